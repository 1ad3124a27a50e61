package rendering

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
)

// LineKind tells a downstream renderer what a line holds
type LineKind string

const (
	KindLetterhead   LineKind = "letterhead"
	KindSenderSymbol LineKind = "sender_symbol"
	KindEndorsement  LineKind = "endorsement"
	KindFrom         LineKind = "from"
	KindTo           LineKind = "to"
	KindVia          LineKind = "via"
	KindSubject      LineKind = "subject"
	KindReference    LineKind = "reference"
	KindEnclosure    LineKind = "enclosure"
	KindParagraph    LineKind = "paragraph"
	KindSignature    LineKind = "signature"
	KindDelegation   LineKind = "delegation"
	KindCopyToLabel  LineKind = "copy_to_label"
	KindCopyTo       LineKind = "copy_to"
	KindBlank        LineKind = "blank"
)

// Alignment of a line between the margins
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
)

// Segment is a run of text sharing one style
type Segment struct {
	Text      string `json:"text"`
	Underline bool   `json:"underline,omitempty"`
}

// Line is one formatted output line. Indent and Hanging are in twips and are
// zero in the fixed-width regime, which spells positions out with
// non-breaking spaces inside the text instead.
type Line struct {
	Kind     LineKind  `json:"kind"`
	Align    Alignment `json:"align"`
	Indent   int       `json:"indent,omitempty"`
	Hanging  int       `json:"hanging,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
}

// Text returns the line's characters without styling
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// IsBlank reports whether the line is an empty separator
func (l Line) IsBlank() bool {
	return l.Kind == KindBlank
}

// Document is the serializer's output: ordered lines plus the page setup a
// renderer needs to lay them out.
type Document struct {
	Regime    config.Regime `json:"regime"`
	Font      string        `json:"font"`
	TabStops  []int         `json:"tab_stops,omitempty"`
	FirstPage int           `json:"first_page"`
	Lines     []Line        `json:"lines"`
}

// Bytes returns the canonical encoding of the document. Equal documents
// always encode to equal bytes.
func (d *Document) Bytes() []byte {
	// Only strings, ints, bools and slices: encoding cannot fail.
	data, _ := json.Marshal(d)
	return data
}

// Fingerprint returns the BLAKE3-256 digest of Bytes, hex encoded
func (d *Document) Fingerprint() string {
	sum := blake3.Sum256(d.Bytes())
	return hex.EncodeToString(sum[:])
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	c := *d
	if d.TabStops != nil {
		c.TabStops = append([]int(nil), d.TabStops...)
	}
	if d.Lines != nil {
		c.Lines = make([]Line, len(d.Lines))
		for i, l := range d.Lines {
			if l.Segments != nil {
				l.Segments = append([]Segment(nil), l.Segments...)
			}
			c.Lines[i] = l
		}
	}
	return &c
}

// PlainText joins the text of every line with newlines, dropping styling
func (d *Document) PlainText() string {
	texts := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		texts[i] = l.Text()
	}
	return strings.Join(texts, "\n")
}
