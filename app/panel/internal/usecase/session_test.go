package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/engine"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/llm"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/storage"
)

// failingGenerator 让后台流水线快速收敛到失败态
type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string, string) (*llm.Completion, error) {
	return nil, errors.New("no llm in tests")
}

func newSessionUseCase(t *testing.T, quota int32) (*SessionUseCase, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	hub := storage.NewHub()
	eng := engine.New(store, hub, failingGenerator{}, nil)

	users, _ := newTestUseCase(quota)
	require.NoError(t, users.Register(context.Background(), "alice", "secret"))

	return NewSessionUseCase(store, hub, eng, users, log.DefaultLogger), store
}

func TestStartValidatesInput(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSessionUseCase(t, 10)

	_, err := uc.Start(ctx, "alice", model.CompanyInput{Sector: "항암제"})
	assert.True(t, kerrors.IsBadRequest(err), "缺公司名应拒绝")

	_, err = uc.Start(ctx, "alice", model.CompanyInput{Name: "알테오젠", Sector: "반도체"})
	assert.True(t, kerrors.IsBadRequest(err), "板块不在枚举内应拒绝")
}

func TestStartCreatesSession(t *testing.T) {
	ctx := context.Background()
	uc, store := newSessionUseCase(t, 10)

	s, err := uc.Start(ctx, "alice", model.CompanyInput{Name: "알테오젠", Sector: "바이오시밀러"})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "alice", s.UserID)
	assert.Equal(t, model.StatusEnriching, s.Status)
	assert.Equal(t, model.PhaseEnrichment, s.CurrentPhase)
	assert.Len(t, s.EnrichmentSteps, 6)

	// 立即可查，后台流水线随后才推进状态
	got, err := store.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
}

func TestStartQuotaExceeded(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSessionUseCase(t, 1)

	_, err := uc.Start(ctx, "alice", model.CompanyInput{Name: "알테오젠", Sector: "바이오시밀러"})
	require.NoError(t, err)

	_, err = uc.Start(ctx, "alice", model.CompanyInput{Name: "셀트리온", Sector: "바이오시밀러"})
	assert.True(t, kerrors.IsForbidden(err))
}

func TestGetEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSessionUseCase(t, 10)

	s, err := uc.Start(ctx, "alice", model.CompanyInput{Name: "알테오젠", Sector: "바이오시밀러"})
	require.NoError(t, err)

	_, err = uc.Get(ctx, "mallory", s.ID)
	assert.True(t, kerrors.IsNotFound(err), "非属主不能区分会话存在与否")

	got, err := uc.Get(ctx, "alice", s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
}

func TestStartPipelineFailureMarksSession(t *testing.T) {
	ctx := context.Background()
	uc, store := newSessionUseCase(t, 10)

	s, err := uc.Start(ctx, "alice", model.CompanyInput{Name: "알테오젠", Sector: "바이오시밀러"})
	require.NoError(t, err)

	// 后台流水线全员失败后会话应落在 failed
	deadline := time.After(3 * time.Second)
	for {
		got, err := store.GetSession(ctx, s.ID)
		require.NoError(t, err)
		if got.Status == model.StatusFailed {
			assert.NotEmpty(t, got.Error)
			return
		}
		select {
		case <-deadline:
			t.Fatalf("session did not fail in time, status=%s", got.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
