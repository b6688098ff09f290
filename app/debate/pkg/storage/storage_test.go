package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

func newSession(id, userID string) *model.Session {
	return &model.Session{
		ID:           id,
		UserID:       userID,
		Company:      model.CompanyInput{Name: "알테오젠", Ticker: "196170", Sector: "바이오시밀러"},
		Status:       model.StatusEnriching,
		CurrentPhase: model.PhaseEnrichment,
		CreatedAt:    time.Now(),
	}
}

func TestMemoryStoreSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateSession(ctx, newSession("s1", "u1")))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnriching, got.Status)
	assert.Equal(t, 0, got.Progress)

	require.NoError(t, s.SetPhase(ctx, "s1", model.StatusAnalyzing, model.PhaseIndependent, 20))
	require.NoError(t, s.SaveConflicts(ctx, "s1", []model.Conflict{{Topic: "임상 가치"}}))
	require.NoError(t, s.AddDegradedSlot(ctx, "s1", model.AgentSlot{
		PersonaID: model.PersonaAnalyst,
		Phase:     model.PhaseIndependent,
		Reason:    "llm timeout",
	}))
	require.NoError(t, s.SetReport(ctx, "s1", &model.FinalReport{ExecutiveSummary: "요약"}, 1234))

	got, err = s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, model.PhaseCompleted, got.CurrentPhase)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, 1234, got.TotalTokens)
	require.NotNil(t, got.CompletedAt)
	require.Len(t, got.Conflicts, 1)
	require.Len(t, got.DegradedSlots, 1)

	_, err = s.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSetFailed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateSession(ctx, newSession("s1", "u1")))
	require.NoError(t, s.SetFailed(ctx, "s1", "모든 전문가 분석 실패"))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, got.Status)
	assert.Equal(t, "모든 전문가 분석 실패", got.Error)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateSession(ctx, newSession("s1", "u1")))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	// 改调用方拿到的副本不能影响存储里的状态
	got.Status = model.StatusFailed

	again, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnriching, again.Status)
}

func TestMemoryStoreListSessionsByUser(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	older := newSession("s1", "u1")
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, s.CreateSession(ctx, older))
	require.NoError(t, s.CreateSession(ctx, newSession("s2", "u1")))
	require.NoError(t, s.CreateSession(ctx, newSession("s3", "u2")))

	got, err := s.ListSessionsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s2", got[0].ID, "按创建时间倒序")
	assert.Equal(t, "s1", got[1].ID)
}

func TestMemoryStoreAppendMessageOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateSession(ctx, newSession("s1", "u1")))

	// 并发追加，Order 必须严格递增且无空洞
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.AppendMessage(ctx, "s1", &model.DebateMessage{
				PersonaID: model.PersonaOncologist,
				Phase:     model.PhaseIndependent,
				Content:   fmt.Sprintf("발언 %d", i),
			})
		}(i)
	}
	wg.Wait()

	msgs, err := s.ListMessages(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 20)
	for i, m := range msgs {
		assert.Equal(t, i, m.Order)
		assert.NotEmpty(t, m.ID)
		assert.False(t, m.CreatedAt.IsZero())
	}

	err = s.AppendMessage(ctx, "missing", &model.DebateMessage{Content: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHubPublishSubscribe(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("s1")
	defer cancel()

	h.Publish(Event{Type: "phase", SessionID: "s1", Payload: "analyzing"})
	h.Publish(Event{Type: "phase", SessionID: "other", Payload: "ignored"})

	select {
	case ev := <-ch:
		assert.Equal(t, "phase", ev.Type)
		assert.Equal(t, "analyzing", ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("未收到事件")
	}

	select {
	case ev := <-ch:
		t.Fatalf("收到了其它会话的事件: %+v", ev)
	default:
	}
}

func TestHubCancelIdempotent(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("s1")

	cancel()
	cancel()

	// 取消后发布不应 panic，通道已关闭
	h.Publish(Event{Type: "phase", SessionID: "s1"})
	_, open := <-ch
	assert.False(t, open)
}

func TestHubDropsWhenSlow(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("s1")
	defer cancel()

	// 超出缓冲的事件被丢弃而不是阻塞发布方
	for i := 0; i < 200; i++ {
		h.Publish(Event{Type: "message", SessionID: "s1", Payload: i})
	}
	assert.Equal(t, 64, len(ch))
}
