package bootstrap

import (
	"time"

	"locator-inspector/internal/browser"
	"locator-inspector/internal/config"
	"locator-inspector/internal/console"
	"locator-inspector/internal/locator"
	"locator-inspector/internal/ports"
	"locator-inspector/internal/usecase"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func core() fx.Option {
	return fx.Options(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),

		fx.Provide(
			config.GetConfig,
			newLogger,
			newTraceProvider,

			fx.Annotate(browser.NewManager, fx.As(new(ports.BrowserManager))),
			fx.Annotate(locator.NewEngine, fx.As(new(ports.LocatorEngine))),

			usecase.NewUsecase,
		),

		fx.Invoke(
			installTracing,
			closeBrowserOnStop,
		),

		fx.StartTimeout(10*time.Second),
	)
}

// NewApp builds the interactive console application.
func NewApp() *fx.App {
	return fx.New(
		core(),

		fx.Provide(
			console.NewInterface,
		),

		fx.Invoke(
			runConsole,
		),
	)
}

// NewLocateApp builds the one-shot application and hands its usecase to svc once started.
func NewLocateApp(svc **usecase.Service) *fx.App {
	return fx.New(
		core(),

		fx.Populate(svc),
	)
}
