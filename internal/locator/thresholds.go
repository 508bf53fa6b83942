package locator

import "locator-inspector/internal/config"

// Thresholds are the empirical limits the heuristics are tuned with.
type Thresholds struct {
	// TextMinLength is the trimmed text length a block must exceed to count as text.
	TextMinLength int
	// TextMaxInteractive is the number of interactive descendants a text block may contain.
	TextMaxInteractive int

	ExactTextMaxLength  int
	LongTextPrefix      int
	LinkTextMaxLength   int
	NestedTextMaxLength int
	NestedTextPrefix    int

	SemanticDepth   int
	PositionalDepth int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		TextMinLength:       3,
		TextMaxInteractive:  1,
		ExactTextMaxLength:  50,
		LongTextPrefix:      30,
		LinkTextMaxLength:   50,
		NestedTextMaxLength: 30,
		NestedTextPrefix:    20,
		SemanticDepth:       3,
		PositionalDepth:     2,
	}
}

// ThresholdsFromConfig maps the engine configuration; a nil config yields the defaults.
func ThresholdsFromConfig(conf *config.EngineConfig) Thresholds {
	if conf == nil {
		return DefaultThresholds()
	}

	return Thresholds{
		TextMinLength:       conf.TextMinLength,
		TextMaxInteractive:  conf.TextMaxInteractive,
		ExactTextMaxLength:  conf.ExactTextMaxLength,
		LongTextPrefix:      conf.LongTextPrefix,
		LinkTextMaxLength:   conf.LinkTextMaxLength,
		NestedTextMaxLength: conf.NestedTextMaxLength,
		NestedTextPrefix:    conf.NestedTextPrefix,
		SemanticDepth:       conf.SemanticDepth,
		PositionalDepth:     conf.PositionalDepth,
	}
}
