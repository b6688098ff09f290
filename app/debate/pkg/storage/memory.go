package storage

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

// MemoryStore 纯内存实现，用于测试和无数据库的本地运行
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	messages map[string][]model.DebateMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*model.Session),
		messages: make(map[string][]model.DebateMessage),
	}
}

// cloneSession 深拷贝，避免调用方拿到内部指针后绕过锁修改
func cloneSession(s *model.Session) *model.Session {
	raw, _ := json.Marshal(s)
	var out model.Session
	_ = json.Unmarshal(raw, &out)
	return &out
}

func (m *MemoryStore) CreateSession(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = cloneSession(s)
	return nil
}

func (m *MemoryStore) GetSession(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(s), nil
}

func (m *MemoryStore) ListSessionsByUser(_ context.Context, userID string) ([]*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Session
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, cloneSession(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) update(id string, fn func(*model.Session)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	fn(s)
	return nil
}

func (m *MemoryStore) SetPhase(_ context.Context, id string, status model.Status, phase model.Phase, progress int) error {
	return m.update(id, func(s *model.Session) {
		s.Status = status
		s.CurrentPhase = phase
		s.Progress = progress
	})
}

func (m *MemoryStore) SetEnrichedData(_ context.Context, id string, data *model.EnrichedData) error {
	return m.update(id, func(s *model.Session) { s.EnrichedData = data })
}

func (m *MemoryStore) SetEnrichmentSteps(_ context.Context, id string, steps []model.EnrichmentStep) error {
	return m.update(id, func(s *model.Session) {
		s.EnrichmentSteps = append([]model.EnrichmentStep(nil), steps...)
	})
}

func (m *MemoryStore) SaveConflicts(_ context.Context, id string, conflicts []model.Conflict) error {
	return m.update(id, func(s *model.Session) { s.Conflicts = conflicts })
}

func (m *MemoryStore) AddDegradedSlot(_ context.Context, id string, slot model.AgentSlot) error {
	return m.update(id, func(s *model.Session) {
		s.DegradedSlots = append(s.DegradedSlots, slot)
	})
}

func (m *MemoryStore) SetReport(_ context.Context, id string, report *model.FinalReport, totalTokens int) error {
	return m.update(id, func(s *model.Session) {
		now := time.Now()
		s.Report = report
		s.TotalTokens = totalTokens
		s.Status = model.StatusCompleted
		s.CurrentPhase = model.PhaseCompleted
		s.Progress = 100
		s.CompletedAt = &now
	})
}

func (m *MemoryStore) SetFailed(_ context.Context, id string, reason string) error {
	return m.update(id, func(s *model.Session) {
		s.Status = model.StatusFailed
		s.Error = reason
	})
}

func (m *MemoryStore) AppendMessage(_ context.Context, sessionID string, msg *model.DebateMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	msg.Order = len(m.messages[sessionID])
	m.messages[sessionID] = append(m.messages[sessionID], *msg)
	return nil
}

func (m *MemoryStore) ListMessages(_ context.Context, sessionID string) ([]model.DebateMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.DebateMessage(nil), m.messages[sessionID]...), nil
}
