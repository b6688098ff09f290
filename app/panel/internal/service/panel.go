package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
	"github.com/biopanel-ai/biopanel/app/debate/pkg/storage"
	"github.com/biopanel-ai/biopanel/app/panel/internal/usecase"
)

type PanelService struct {
	ucUser    *usecase.UserUseCase
	ucSession *usecase.SessionUseCase
	log       *log.Helper
}

func NewPanelService(ucUser *usecase.UserUseCase, ucSession *usecase.SessionUseCase, logger log.Logger) *PanelService {
	return &PanelService{
		ucUser:    ucUser,
		ucSession: ucSession,
		log:       log.NewHelper(logger),
	}
}

type RegisterReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginReply struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type StartAnalysisReq struct {
	Company model.CompanyInput `json:"company"`
}

func (s *PanelService) Register(ctx context.Context, req *RegisterReq) (*RegisterReply, error) {
	err := s.ucUser.Register(ctx, req.Username, req.Password)
	if err != nil {
		return &RegisterReply{Success: false, Message: err.Error()}, nil
	}
	return &RegisterReply{Success: true, Message: "success"}, nil
}

func (s *PanelService) Login(ctx context.Context, req *LoginReq) (*LoginReply, error) {
	token, err := s.ucUser.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &LoginReply{Token: token, Username: req.Username}, nil
}

// Authenticate 校验 Token 并返回用户名，HTTP 层的鉴权入口
func (s *PanelService) Authenticate(token string) (string, error) {
	return s.ucUser.ParseToken(token)
}

func (s *PanelService) StartAnalysis(ctx context.Context, username string, req *StartAnalysisReq) (*model.Session, error) {
	return s.ucSession.Start(ctx, username, req.Company)
}

func (s *PanelService) GetAnalysis(ctx context.Context, username, id string) (*model.Session, error) {
	return s.ucSession.Get(ctx, username, id)
}

func (s *PanelService) ListAnalyses(ctx context.Context, username string) ([]*model.Session, error) {
	return s.ucSession.List(ctx, username)
}

func (s *PanelService) GetMessages(ctx context.Context, username, id string) ([]model.DebateMessage, error) {
	return s.ucSession.Messages(ctx, username, id)
}

func (s *PanelService) SubscribeAnalysis(ctx context.Context, username, id string) (*model.Session, <-chan storage.Event, func(), error) {
	return s.ucSession.Subscribe(ctx, username, id)
}
