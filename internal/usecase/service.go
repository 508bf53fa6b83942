package usecase

import (
	"locator-inspector/internal/config"
	"locator-inspector/internal/ports"
	"locator-inspector/internal/usecase/adapters"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	Inspector adapters.InspectorService
	Browser   adapters.BrowserService
}

type Params struct {
	fx.In

	Logger  *zap.Logger
	Config  *config.Config
	Engine  ports.LocatorEngine
	Browser ports.BrowserManager
}

func NewUsecase(params Params) *Service {
	factory := newServiceFactory(params)

	return &Service{
		Inspector: factory.CreateInspectorService(),
		Browser:   factory.CreateBrowserService(),
	}
}
