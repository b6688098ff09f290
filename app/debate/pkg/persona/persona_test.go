package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Len(t, r.All(), 5)
	assert.Equal(t, model.PersonaIDs, r.IDs())
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()

	p, err := r.Get(model.PersonaOncologist)
	require.NoError(t, err)
	assert.Equal(t, "김서연", p.Name)
	assert.NotEmpty(t, p.EvaluationAxes)
	assert.NotEmpty(t, p.ConflictTriggers)

	_, err = r.Get("astrologist")
	assert.Error(t, err)
}

func TestRegistryMustGet(t *testing.T) {
	r := NewRegistry()
	assert.NotPanics(t, func() { r.MustGet(model.PersonaAnalyst) })
	assert.Panics(t, func() { r.MustGet("nobody") })
}

func TestProfilesComplete(t *testing.T) {
	for _, p := range NewRegistry().All() {
		assert.NotEmpty(t, p.Name, p.ID)
		assert.NotEmpty(t, p.Title, p.ID)
		assert.NotEmpty(t, p.Color, p.ID)
		assert.NotEmpty(t, p.BiasProfile, p.ID)
	}
}
