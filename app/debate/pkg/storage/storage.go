// Package storage 会话与辩论记录的持久化层。
// 提供内存实现和 PostgreSQL 实现，对上层暴露同一个 Store 接口。
package storage

import (
	"context"
	"errors"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

// ErrNotFound 会话不存在
var ErrNotFound = errors.New("session not found")

// Store 会话存储接口。
// AppendMessage 负责分配 Order：同一会话内严格递增、无空洞，
// 并发追加由实现内部串行化。
type Store interface {
	CreateSession(ctx context.Context, s *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	ListSessionsByUser(ctx context.Context, userID string) ([]*model.Session, error)

	SetPhase(ctx context.Context, id string, status model.Status, phase model.Phase, progress int) error
	SetEnrichedData(ctx context.Context, id string, data *model.EnrichedData) error
	SetEnrichmentSteps(ctx context.Context, id string, steps []model.EnrichmentStep) error
	SaveConflicts(ctx context.Context, id string, conflicts []model.Conflict) error
	AddDegradedSlot(ctx context.Context, id string, slot model.AgentSlot) error
	SetReport(ctx context.Context, id string, report *model.FinalReport, totalTokens int) error
	SetFailed(ctx context.Context, id string, reason string) error

	AppendMessage(ctx context.Context, sessionID string, msg *model.DebateMessage) error
	ListMessages(ctx context.Context, sessionID string) ([]model.DebateMessage, error)
}
