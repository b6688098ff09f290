package server

import (
	"github.com/google/wire"

	"github.com/biopanel-ai/biopanel/app/panel/internal/data"
	"github.com/biopanel-ai/biopanel/app/panel/internal/service"
	"github.com/biopanel-ai/biopanel/app/panel/internal/usecase"
)

// ProviderSet 是面板服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewDebateStore,
	NewDebateEngine,
	NewHub,

	// Data providers
	data.NewData,
	data.NewUserRepo,

	// UseCase providers
	usecase.NewUserUseCase,
	usecase.NewSessionUseCase,

	// Service providers
	service.NewPanelService,
)
