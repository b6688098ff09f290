package usecase

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/engine"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/enrich"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/storage"
)

// SessionUseCase 分析会话业务逻辑。
// Start 同步创建会话后把流水线丢到后台协程，进度通过 SSE 下发。
type SessionUseCase struct {
	store storage.Store
	hub   *storage.Hub
	eng   *engine.Engine
	users *UserUseCase
	log   *log.Helper
}

func NewSessionUseCase(store storage.Store, hub *storage.Hub, eng *engine.Engine,
	users *UserUseCase, logger log.Logger) *SessionUseCase {
	return &SessionUseCase{
		store: store,
		hub:   hub,
		eng:   eng,
		users: users,
		log:   log.NewHelper(logger),
	}
}

// Start 校验输入和额度后创建会话并启动辩论
func (uc *SessionUseCase) Start(ctx context.Context, username string, company model.CompanyInput) (*model.Session, error) {
	if company.Name == "" {
		return nil, errors.BadRequest("INVALID_ARGUMENT", "회사 이름을 입력해주세요")
	}
	if !model.ValidSector(company.Sector) {
		return nil, errors.BadRequest("INVALID_ARGUMENT", "유효하지 않은 분야입니다")
	}
	if err := uc.users.ConsumeQuota(ctx, username); err != nil {
		return nil, err
	}

	s := &model.Session{
		ID:              uuid.NewString(),
		UserID:          username,
		Company:         company,
		Status:          model.StatusEnriching,
		CurrentPhase:    model.PhaseEnrichment,
		EnrichmentSteps: enrich.InitialSteps(),
		CreatedAt:       time.Now(),
	}
	if err := uc.store.CreateSession(ctx, s); err != nil {
		return nil, err
	}

	// 流水线生命周期独立于本次 HTTP 请求
	go func() {
		if err := uc.eng.Run(context.Background(), s.ID, company); err != nil {
			uc.log.Errorf("session %s failed: %v", s.ID, err)
		}
	}()

	return s, nil
}

// Get 获取会话，只有属主可见
func (uc *SessionUseCase) Get(ctx context.Context, username, id string) (*model.Session, error) {
	s, err := uc.store.GetSession(ctx, id)
	if err != nil {
		return nil, errors.NotFound("SESSION_NOT_FOUND", "session not found")
	}
	if s.UserID != username {
		return nil, errors.NotFound("SESSION_NOT_FOUND", "session not found")
	}
	return s, nil
}

// List 列出用户的全部会话
func (uc *SessionUseCase) List(ctx context.Context, username string) ([]*model.Session, error) {
	return uc.store.ListSessionsByUser(ctx, username)
}

// Messages 按 Order 返回会话的辩论时间线
func (uc *SessionUseCase) Messages(ctx context.Context, username, id string) ([]model.DebateMessage, error) {
	if _, err := uc.Get(ctx, username, id); err != nil {
		return nil, err
	}
	return uc.store.ListMessages(ctx, id)
}

// Subscribe 订阅会话事件流，返回当前快照和后续事件
func (uc *SessionUseCase) Subscribe(ctx context.Context, username, id string) (*model.Session, <-chan storage.Event, func(), error) {
	s, err := uc.Get(ctx, username, id)
	if err != nil {
		return nil, nil, nil, err
	}
	ch, cancel := uc.hub.Subscribe(id)
	return s, ch, cancel, nil
}
