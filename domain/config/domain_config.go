package config

import (
	"fmt"
)

// Regime names one of the two mutually exclusive spacing regimes
type Regime string

const (
	RegimeProportional Regime = "proportional"
	RegimeFixedWidth   Regime = "fixed_width"
)

// TwipsPerInch is the layout unit used for every horizontal measure below
const TwipsPerInch = 1440

// FormatConfig holds all configurable layout rules for letter rendering
type FormatConfig struct {
	// Spacing regime
	Regime Regime

	// Outline constraints
	MaxLevel int

	// Subject wrapping
	SubjectLineWidth int

	// Proportional tab stops, in twips from the left margin
	LabelTabStop  int
	MarkerTabStop int

	// Horizontal indents, in twips from the left margin
	ParagraphIndentStep int
	SenderSymbolIndent  int
	SignatureIndent     int

	// Fixed-width geometry
	FixedLabelColumn  int // characters reserved for "From:", "To:", ...
	TwipsPerFixedChar int // 10 characters per inch
	ProportionalFont  string
	FixedWidthFont    string

	// Letterhead defaults
	DefaultLetterheadTitle string
}

// DefaultFormatConfig returns the default layout configuration
func DefaultFormatConfig() *FormatConfig {
	return &FormatConfig{
		Regime: RegimeProportional,

		MaxLevel: 8,

		SubjectLineWidth: 57,

		LabelTabStop:  720,
		MarkerTabStop: 1080,

		ParagraphIndentStep: 576,
		SenderSymbolIndent:  6480,
		SignatureIndent:     4608,

		FixedLabelColumn:  7,
		TwipsPerFixedChar: 144,
		ProportionalFont:  "Times New Roman",
		FixedWidthFont:    "Courier New",

		DefaultLetterheadTitle: "DEPARTMENT OF THE NAVY",
	}
}

// FixedWidthFormatConfig returns the default configuration for the fixed-width regime
func FixedWidthFormatConfig() *FormatConfig {
	config := DefaultFormatConfig()
	config.Regime = RegimeFixedWidth
	return config
}

// LoadFormatConfig returns the configuration for a regime name.
// Unknown names fall back to the proportional default.
func LoadFormatConfig(regime string) *FormatConfig {
	switch Regime(regime) {
	case RegimeFixedWidth:
		return FixedWidthFormatConfig()
	default:
		return DefaultFormatConfig()
	}
}

// Validate checks if the configuration is usable
func (c *FormatConfig) Validate() error {
	switch c.Regime {
	case RegimeProportional, RegimeFixedWidth:
	default:
		return fmt.Errorf("unknown spacing regime %q", c.Regime)
	}
	if c.MaxLevel < 1 || c.MaxLevel > 8 {
		return fmt.Errorf("max level must be between 1 and 8, got %d", c.MaxLevel)
	}
	if c.SubjectLineWidth < 1 {
		return fmt.Errorf("subject line width must be positive, got %d", c.SubjectLineWidth)
	}
	if c.MarkerTabStop <= c.LabelTabStop {
		return fmt.Errorf("marker tab stop (%d) must be right of label tab stop (%d)", c.MarkerTabStop, c.LabelTabStop)
	}
	if c.TwipsPerFixedChar < 1 {
		return fmt.Errorf("twips per fixed-width character must be positive, got %d", c.TwipsPerFixedChar)
	}
	if c.FixedLabelColumn <= len("Encl:") {
		return fmt.Errorf("fixed label column (%d) leaves no gap after the longest label", c.FixedLabelColumn)
	}
	return nil
}
