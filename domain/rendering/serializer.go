package rendering

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/services"
	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
)

// signatureGap is the number of blank lines left for the handwritten signature
const signatureGap = 3

// LetterInput is everything the serializer reads. Endorsement is nil for a
// basic letter.
type LetterInput struct {
	Header      valueobjects.LetterHeader
	Routing     valueobjects.RoutingLists
	Paragraphs  []entities.Paragraph
	Endorsement *valueobjects.EndorsementContext
}

// LetterSerializer turns a letter into an ordered sequence of formatted lines.
// It holds no mutable state, so one instance may serve concurrent callers.
type LetterSerializer struct {
	profile   SpacingProfile
	citations *services.CitationEngine
	cfg       *config.FormatConfig
}

// NewLetterSerializer creates a serializer for one spacing profile
func NewLetterSerializer(profile SpacingProfile, citations *services.CitationEngine, cfg *config.FormatConfig) *LetterSerializer {
	if cfg == nil {
		cfg = config.DefaultFormatConfig()
	}
	if profile == nil {
		profile = NewProportional(cfg)
	}
	if citations == nil {
		citations = services.NewCitationEngine()
	}
	return &LetterSerializer{
		profile:   profile,
		citations: citations,
		cfg:       cfg,
	}
}

// Profile returns the spacing profile in use
func (s *LetterSerializer) Profile() SpacingProfile {
	return s.profile
}

// Serialize lays out the letter. Missing endorsement fields fail before any
// line is produced.
func (s *LetterSerializer) Serialize(in LetterInput) (*Document, error) {
	if err := CheckEndorsement(in.Endorsement); err != nil {
		return nil, err
	}

	upper := cases.Upper(language.Und)
	routing := in.Routing.Compact()
	b := &lineBuilder{}

	s.writeLetterhead(b, in.Header.Letterhead)
	s.writeSenderSymbols(b, in.Header)
	if in.Endorsement != nil {
		b.text(KindEndorsement, AlignLeft, 0,
			in.Endorsement.Ordinal()+" ENDORSEMENT on "+strings.TrimSpace(in.Endorsement.BasicLetterReference))
		b.blank()
	}

	b.text(KindFrom, AlignLeft, 0, s.profile.FromLabel()+in.Header.From)
	b.text(KindTo, AlignLeft, 0, s.profile.ToLabel()+in.Header.To)
	for i, via := range routing.Via {
		b.list(KindVia, s.profile.Hanging(), s.profile.ViaLabel(i, len(routing.Via))+via)
	}
	b.blank()

	subject := SplitChunks(upper.String(in.Header.Subject), s.cfg.SubjectLineWidth)
	if len(subject) == 0 {
		subject = []string{""}
	}
	for i, chunk := range subject {
		b.text(KindSubject, AlignLeft, 0, s.profile.SubjectLabel(i)+chunk)
	}
	b.blank()

	refStart, enclStart := 1, 1
	if in.Endorsement != nil {
		refStart = in.Endorsement.ReferenceStart()
		enclStart = in.Endorsement.EnclosureStart()
	}
	for i, ref := range routing.References {
		b.list(KindReference, s.profile.Hanging(),
			s.profile.ReferenceLabel(i, services.Letter(refStart+i))+ref)
	}
	for i, encl := range routing.Enclosures {
		b.list(KindEnclosure, s.profile.Hanging(),
			s.profile.EnclosureLabel(i, strconv.Itoa(enclStart+i))+encl)
	}
	b.blank()

	s.writeBody(b, in.Paragraphs)
	s.writeSignature(b, in.Header.Signature, upper)
	s.writeCopyTo(b, routing.CopyTo)

	doc := &Document{
		Regime:    s.profile.Regime(),
		Font:      s.profile.Font(),
		TabStops:  s.profile.TabStops(),
		FirstPage: 1,
		Lines:     b.finish(),
	}
	if in.Endorsement != nil {
		doc.FirstPage = in.Endorsement.PageStart()
	}
	return doc, nil
}

// CheckEndorsement reports the required endorsement fields that are missing.
// A nil context is a basic letter and always passes.
func CheckEndorsement(e *valueobjects.EndorsementContext) error {
	if e == nil {
		return nil
	}
	var missing []string
	if e.Level == 0 {
		missing = append(missing, "level")
	}
	if strings.TrimSpace(e.BasicLetterReference) == "" {
		missing = append(missing, "basic_letter_reference")
	}
	if len(missing) > 0 {
		return pkgerrors.NewEndorsementFieldMissing(missing...)
	}
	if e.Ordinal() == "" {
		return pkgerrors.NewDomainError(pkgerrors.DomainValidationError, "ENDORSEMENT_LEVEL_RANGE",
			"endorsement level must be between 1 and 6").
			WithDetail("field", "level").
			WithDetail("level", e.Level)
	}
	return nil
}

func (s *LetterSerializer) writeLetterhead(b *lineBuilder, lh valueobjects.Letterhead) {
	title := strings.TrimSpace(lh.Title)
	if title == "" {
		title = s.cfg.DefaultLetterheadTitle
	}
	b.text(KindLetterhead, AlignCenter, 0, title)
	for _, line := range lh.Lines {
		if strings.TrimSpace(line) != "" {
			b.text(KindLetterhead, AlignCenter, 0, line)
		}
	}
	b.blank()
}

func (s *LetterSerializer) writeSenderSymbols(b *lineBuilder, h valueobjects.LetterHeader) {
	indent, lead := s.profile.Indent(s.cfg.SenderSymbolIndent)
	for _, symbol := range []string{h.SSIC, h.OriginatorCode, h.Date} {
		if strings.TrimSpace(symbol) != "" {
			b.text(KindSenderSymbol, AlignLeft, indent, lead+symbol)
		}
	}
	b.blank()
}

func (s *LetterSerializer) writeBody(b *lineBuilder, paragraphs []entities.Paragraph) {
	for i, p := range paragraphs {
		indent, lead := s.profile.Indent((p.Level().Int() - 1) * s.cfg.ParagraphIndentStep)
		mark := s.citations.Mark(i, paragraphs)

		var segments []Segment
		if lead != "" {
			segments = append(segments, Segment{Text: lead})
		}
		if mark.Prefix != "" {
			segments = append(segments, Segment{Text: mark.Prefix})
		}
		segments = append(segments, Segment{Text: mark.Token, Underline: mark.Underline})
		segments = append(segments, Segment{Text: mark.Suffix + s.profile.CitationSeparator() + p.Text()})

		b.add(Line{Kind: KindParagraph, Align: AlignLeft, Indent: indent, Segments: segments})
		b.blank()
	}
}

func (s *LetterSerializer) writeSignature(b *lineBuilder, sig valueobjects.Signature, upper cases.Caser) {
	name := strings.TrimSpace(sig.Name)
	if name == "" {
		return
	}
	b.blank()
	for i := 1; i < signatureGap; i++ {
		b.add(Line{Kind: KindBlank, Align: AlignLeft})
	}
	indent, lead := s.profile.Indent(s.cfg.SignatureIndent)
	b.text(KindSignature, AlignLeft, indent, lead+upper.String(name))
	if d := strings.TrimSpace(sig.Delegation); d != "" {
		b.text(KindDelegation, AlignLeft, indent, lead+d)
	}
}

func (s *LetterSerializer) writeCopyTo(b *lineBuilder, entries []string) {
	if len(entries) == 0 {
		return
	}
	b.blank()
	b.text(KindCopyToLabel, AlignLeft, 0, s.profile.CopyToLabel())
	for _, entry := range entries {
		b.text(KindCopyTo, AlignLeft, 0, entry)
	}
}

// lineBuilder accumulates lines and collapses runs of blank separators
type lineBuilder struct {
	lines []Line
}

func (b *lineBuilder) add(l Line) {
	b.lines = append(b.lines, l)
}

func (b *lineBuilder) text(kind LineKind, align Alignment, indent int, text string) {
	b.add(Line{Kind: kind, Align: align, Indent: indent, Segments: []Segment{{Text: text}}})
}

func (b *lineBuilder) list(kind LineKind, hanging int, text string) {
	b.add(Line{Kind: kind, Align: AlignLeft, Hanging: hanging, Segments: []Segment{{Text: text}}})
}

// blank adds a separator unless the previous line already is one
func (b *lineBuilder) blank() {
	if n := len(b.lines); n == 0 || b.lines[n-1].IsBlank() {
		return
	}
	b.add(Line{Kind: KindBlank, Align: AlignLeft})
}

// finish drops trailing separators
func (b *lineBuilder) finish() []Line {
	n := len(b.lines)
	for n > 0 && b.lines[n-1].IsBlank() {
		n--
	}
	return b.lines[:n]
}
