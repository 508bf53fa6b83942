package bootstrap

import (
	"context"

	"locator-inspector/internal/console"
	"locator-inspector/internal/ports"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// runConsole starts the REPL in the background; the browser is launched
// lazily by the first open command.
func runConsole(lc fx.Lifecycle, consoleInterface *console.Interface, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting Locator Inspector console...")

			go func() {
				if err := consoleInterface.Start(); err != nil {
					logger.Error("Console interface error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := consoleInterface.Stop(); err != nil {
				logger.Error("Failed to stop console", zap.Error(err))
			}

			return nil
		},
	})
}

func closeBrowserOnStop(lc fx.Lifecycle, browser ports.BrowserManager, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := browser.Close(ctx); err != nil {
				logger.Error("Failed to close browser", zap.Error(err))
			}

			return nil
		},
	})
}
