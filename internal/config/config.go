package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppConfig     *AppConfig
	BrowserConfig *BrowserConfig
	EngineConfig  *EngineConfig
}

type AppConfig struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
	Tracing  bool   `envconfig:"TRACING" default:"false"`
}

type BrowserConfig struct {
	Headless    bool   `envconfig:"BROWSER_HEADLESS" default:"true"`
	Install     bool   `envconfig:"BROWSER_INSTALL" default:"true"`
	SlowMo      int    `envconfig:"BROWSER_SLOW_MO" default:"0"`
	Timeout     int    `envconfig:"BROWSER_TIMEOUT" default:"30000"`
	UserDataDir string `envconfig:"BROWSER_USER_DATA_DIR" default:""`
}

// EngineConfig holds the empirical thresholds of the locator heuristics.
// The defaults reproduce the behaviour testers already rely on; change them with care.
type EngineConfig struct {
	TextMinLength       int `envconfig:"ENGINE_TEXT_MIN_LENGTH" default:"3"`
	TextMaxInteractive  int `envconfig:"ENGINE_TEXT_MAX_INTERACTIVE" default:"1"`
	ExactTextMaxLength  int `envconfig:"ENGINE_EXACT_TEXT_MAX_LENGTH" default:"50"`
	LongTextPrefix      int `envconfig:"ENGINE_LONG_TEXT_PREFIX" default:"30"`
	LinkTextMaxLength   int `envconfig:"ENGINE_LINK_TEXT_MAX_LENGTH" default:"50"`
	NestedTextMaxLength int `envconfig:"ENGINE_NESTED_TEXT_MAX_LENGTH" default:"30"`
	NestedTextPrefix    int `envconfig:"ENGINE_NESTED_TEXT_PREFIX" default:"20"`
	SemanticDepth       int `envconfig:"ENGINE_SEMANTIC_DEPTH" default:"3"`
	PositionalDepth     int `envconfig:"ENGINE_POSITIONAL_DEPTH" default:"2"`
}

func GetConfig() (*Config, error) {
	_ = godotenv.Load()

	var conf Config

	if err := envconfig.Process("", &conf); err != nil {
		return nil, fmt.Errorf("read config from env vars: %w", err)
	}

	return &conf, nil
}
