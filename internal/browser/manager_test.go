package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"locator-inspector/internal/config"
	"locator-inspector/pkg/apperr"
)

type failingChromium struct {
	playwright.BrowserType
}

func (failingChromium) Launch(...playwright.BrowserTypeLaunchOptions) (playwright.Browser, error) {
	return nil, errors.New("chromium is not installed")
}

func TestManager_LaunchFailureStopsDriver(t *testing.T) {
	m := NewManager(Params{
		Config: &config.Config{BrowserConfig: &config.BrowserConfig{Headless: true}},
		Logger: zap.NewNop(),
	})

	var started, stopped []*playwright.Playwright
	m.run = func() (*playwright.Playwright, error) {
		pw := &playwright.Playwright{Chromium: failingChromium{}}
		started = append(started, pw)

		return pw, nil
	}
	m.stop = func(pw *playwright.Playwright) error {
		stopped = append(stopped, pw)

		return nil
	}

	for attempt := 1; attempt <= 2; attempt++ {
		err := m.Launch(context.Background())
		require.Error(t, err)
		assert.Equal(t, apperr.CodeUnavailable, apperr.CodeOf(err))

		assert.False(t, m.IsReady())
		assert.Nil(t, m.playwright)
		assert.Equal(t, started, stopped, "every started driver is stopped")
		assert.Len(t, started, attempt)
	}

	require.NoError(t, m.Close(context.Background()), "nothing left to close")
	assert.Len(t, stopped, 2)
}

func TestManager_DriverStartFailure(t *testing.T) {
	m := NewManager(Params{
		Config: &config.Config{BrowserConfig: &config.BrowserConfig{}},
		Logger: zap.NewNop(),
	})
	m.run = func() (*playwright.Playwright, error) {
		return nil, errors.New("driver missing")
	}
	m.stop = func(*playwright.Playwright) error {
		t.Fatal("no driver to stop")

		return nil
	}

	err := m.Launch(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnavailable, apperr.CodeOf(err))
	assert.False(t, m.IsReady())
}
