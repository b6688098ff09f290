package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

// PostgresStore 基于 PostgreSQL 的实现。
// 会话聚合整体存成一列 JSONB，消息按 (session_id, ord) 单独建表，
// 避免每条消息都重写整个会话文档。
type PostgresStore struct {
	db *sql.DB

	// 文档更新是读出再写回，并行阶段多个协程会同时记降级，
	// 进程内串行化避免后写覆盖先写
	docMu sync.Mutex

	// Order 分配需要 MAX(ord)+1 和 INSERT 原子执行，进程内先串行化
	appendMu sync.Mutex
}

// NewPostgresStore 打开连接并初始化表结构
func NewPostgresStore(source string) (*PostgresStore, func(), error) {
	db, err := sql.Open("postgres", source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS debate_sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			doc JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_debate_sessions_user
			ON debate_sessions (user_id, created_at DESC);
		CREATE TABLE IF NOT EXISTS debate_messages (
			session_id TEXT NOT NULL REFERENCES debate_sessions (id),
			ord INT NOT NULL,
			doc JSONB NOT NULL,
			PRIMARY KEY (session_id, ord)
		)
	`); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to init debate tables: %w", err)
	}

	cleanup := func() { db.Close() }
	return &PostgresStore{db: db}, cleanup, nil
}

func (p *PostgresStore) CreateSession(ctx context.Context, s *model.Session) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO debate_sessions (id, user_id, doc, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.UserID, doc, s.CreatedAt)
	return err
}

func (p *PostgresStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	var doc []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT doc FROM debate_sessions WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s model.Session
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) ListSessionsByUser(ctx context.Context, userID string) ([]*model.Session, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT doc FROM debate_sessions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Session
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var s model.Session
		if err := json.Unmarshal(doc, &s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// update 读出文档、应用变更、写回。会话只在单个进程内编排，
// docMu 串行化即可，不需要跨进程的乐观锁。
func (p *PostgresStore) update(ctx context.Context, id string, fn func(*model.Session)) error {
	p.docMu.Lock()
	defer p.docMu.Unlock()

	s, err := p.GetSession(ctx, id)
	if err != nil {
		return err
	}
	fn(s)
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx,
		`UPDATE debate_sessions SET doc = $2 WHERE id = $1`, id, doc)
	return err
}

func (p *PostgresStore) SetPhase(ctx context.Context, id string, status model.Status, phase model.Phase, progress int) error {
	return p.update(ctx, id, func(s *model.Session) {
		s.Status = status
		s.CurrentPhase = phase
		s.Progress = progress
	})
}

func (p *PostgresStore) SetEnrichedData(ctx context.Context, id string, data *model.EnrichedData) error {
	return p.update(ctx, id, func(s *model.Session) { s.EnrichedData = data })
}

func (p *PostgresStore) SetEnrichmentSteps(ctx context.Context, id string, steps []model.EnrichmentStep) error {
	return p.update(ctx, id, func(s *model.Session) { s.EnrichmentSteps = steps })
}

func (p *PostgresStore) SaveConflicts(ctx context.Context, id string, conflicts []model.Conflict) error {
	return p.update(ctx, id, func(s *model.Session) { s.Conflicts = conflicts })
}

func (p *PostgresStore) AddDegradedSlot(ctx context.Context, id string, slot model.AgentSlot) error {
	return p.update(ctx, id, func(s *model.Session) {
		s.DegradedSlots = append(s.DegradedSlots, slot)
	})
}

func (p *PostgresStore) SetReport(ctx context.Context, id string, report *model.FinalReport, totalTokens int) error {
	return p.update(ctx, id, func(s *model.Session) {
		now := time.Now()
		s.Report = report
		s.TotalTokens = totalTokens
		s.Status = model.StatusCompleted
		s.CurrentPhase = model.PhaseCompleted
		s.Progress = 100
		s.CompletedAt = &now
	})
}

func (p *PostgresStore) SetFailed(ctx context.Context, id string, reason string) error {
	return p.update(ctx, id, func(s *model.Session) {
		s.Status = model.StatusFailed
		s.Error = reason
	})
}

func (p *PostgresStore) AppendMessage(ctx context.Context, sessionID string, msg *model.DebateMessage) error {
	p.appendMu.Lock()
	defer p.appendMu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	var next int
	if err := p.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(ord) + 1, 0) FROM debate_messages WHERE session_id = $1`,
		sessionID).Scan(&next); err != nil {
		return err
	}
	msg.Order = next

	doc, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO debate_messages (session_id, ord, doc) VALUES ($1, $2, $3)`,
		sessionID, next, doc)
	return err
}

func (p *PostgresStore) ListMessages(ctx context.Context, sessionID string) ([]model.DebateMessage, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT doc FROM debate_messages WHERE session_id = $1 ORDER BY ord`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.DebateMessage, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var m model.DebateMessage
		if err := json.Unmarshal(doc, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
