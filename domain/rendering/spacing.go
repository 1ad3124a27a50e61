package rendering

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
)

// NBSP is the non-breaking space used for all fixed-width alignment
const NBSP = "\u00a0"

const (
	labelFrom   = "From:"
	labelTo     = "To:"
	labelVia    = "Via:"
	labelSubj   = "Subj:"
	labelRef    = "Ref:"
	labelEncl   = "Encl:"
	labelCopyTo = "Copy to:"
)

// SpacingProfile formats labels and markers for one spacing regime. The
// serializer never branches on the regime; it only asks the profile.
type SpacingProfile interface {
	Regime() config.Regime
	Font() string
	TabStops() []int

	FromLabel() string
	ToLabel() string
	SubjectLabel(index int) string
	ViaLabel(index, total int) string
	ReferenceLabel(index int, marker string) string
	EnclosureLabel(index int, marker string) string
	CopyToLabel() string

	// CitationSeparator goes between a paragraph's citation and its text
	CitationSeparator() string

	// Indent converts a horizontal offset in twips into the line indent and
	// the leading text that together produce it
	Indent(twips int) (int, string)

	// Hanging is the hanging indent of list entries that wrap, in twips
	Hanging() int
}

// ProfileFor returns the profile for regime
func ProfileFor(regime config.Regime, cfg *config.FormatConfig) (SpacingProfile, error) {
	if cfg == nil {
		cfg = config.DefaultFormatConfig()
	}
	switch regime {
	case config.RegimeProportional:
		return NewProportional(cfg), nil
	case config.RegimeFixedWidth:
		return NewFixedWidth(cfg), nil
	default:
		return nil, fmt.Errorf("unknown spacing regime %q", regime)
	}
}

// marker returns "(m) " or "" when m is empty
func marker(m, space string) string {
	if m == "" {
		return ""
	}
	return "(" + m + ")" + space
}

// Proportional lays labels out with tab characters against two tab stops:
// the label column and the marker column.
type Proportional struct {
	labelStop  int
	markerStop int
	font       string
}

// NewProportional creates the tab-stop profile
func NewProportional(cfg *config.FormatConfig) *Proportional {
	return &Proportional{
		labelStop:  cfg.LabelTabStop,
		markerStop: cfg.MarkerTabStop,
		font:       cfg.ProportionalFont,
	}
}

func (p *Proportional) Regime() config.Regime { return config.RegimeProportional }
func (p *Proportional) Font() string          { return p.font }
func (p *Proportional) TabStops() []int       { return []int{p.labelStop, p.markerStop} }
func (p *Proportional) FromLabel() string     { return labelFrom + "\t" }
func (p *Proportional) ToLabel() string       { return labelTo + "\t" }
func (p *Proportional) CopyToLabel() string   { return labelCopyTo }
func (p *Proportional) CitationSeparator() string {
	return "  "
}

func (p *Proportional) SubjectLabel(index int) string {
	return p.section(labelSubj, index)
}

func (p *Proportional) ViaLabel(index, total int) string {
	if total == 1 {
		return p.section(labelVia, index)
	}
	return p.section(labelVia, index) + marker(strconv.Itoa(index+1), " ")
}

func (p *Proportional) ReferenceLabel(index int, m string) string {
	return p.section(labelRef, index) + marker(m, " ")
}

func (p *Proportional) EnclosureLabel(index int, m string) string {
	return p.section(labelEncl, index) + marker(m, " ")
}

func (p *Proportional) Indent(twips int) (int, string) {
	return twips, ""
}

// Hanging aligns wrapped entry text under the marker column
func (p *Proportional) Hanging() int {
	return p.markerStop
}

// section returns the label on the first entry and a lone tab after it
func (p *Proportional) section(label string, index int) string {
	if index == 0 {
		return label + "\t"
	}
	return "\t"
}

// FixedWidth pads every label with non-breaking spaces to one column so
// that a monospace rendering lines the content up without tab stops.
type FixedWidth struct {
	column       int
	twipsPerChar int
	font         string
}

// NewFixedWidth creates the monospace profile
func NewFixedWidth(cfg *config.FormatConfig) *FixedWidth {
	return &FixedWidth{
		column:       cfg.FixedLabelColumn,
		twipsPerChar: cfg.TwipsPerFixedChar,
		font:         cfg.FixedWidthFont,
	}
}

func (f *FixedWidth) Regime() config.Regime { return config.RegimeFixedWidth }
func (f *FixedWidth) Font() string          { return f.font }
func (f *FixedWidth) TabStops() []int       { return nil }
func (f *FixedWidth) FromLabel() string     { return f.pad(labelFrom) }
func (f *FixedWidth) ToLabel() string       { return f.pad(labelTo) }
func (f *FixedWidth) CopyToLabel() string   { return labelCopyTo }
func (f *FixedWidth) Hanging() int          { return 0 }
func (f *FixedWidth) CitationSeparator() string {
	return NBSP + NBSP
}

func (f *FixedWidth) SubjectLabel(index int) string {
	return f.section(labelSubj, index)
}

func (f *FixedWidth) ViaLabel(index, total int) string {
	if total == 1 {
		return f.section(labelVia, index)
	}
	return f.section(labelVia, index) + marker(strconv.Itoa(index+1), NBSP)
}

func (f *FixedWidth) ReferenceLabel(index int, m string) string {
	return f.section(labelRef, index) + marker(m, NBSP)
}

func (f *FixedWidth) EnclosureLabel(index int, m string) string {
	return f.section(labelEncl, index) + marker(m, NBSP)
}

// Indent spells the offset out as whole character cells
func (f *FixedWidth) Indent(twips int) (int, string) {
	if twips <= 0 || f.twipsPerChar <= 0 {
		return 0, ""
	}
	return 0, strings.Repeat(NBSP, twips/f.twipsPerChar)
}

func (f *FixedWidth) section(label string, index int) string {
	if index == 0 {
		return f.pad(label)
	}
	return strings.Repeat(NBSP, f.column)
}

// pad right-fills label with NBSP up to the label column. A label at least
// as wide as the column still gets one separating space.
func (f *FixedWidth) pad(label string) string {
	n := f.column - utf8.RuneCountInString(label)
	if n < 1 {
		n = 1
	}
	return label + strings.Repeat(NBSP, n)
}
