// Package bundle encodes letter drafts into schema-versioned export bundles
// and decodes them back, upgrading older schema versions on the way in.
// Encoding can also target an older schema version for readers that have not
// moved on.
package bundle

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/ports"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/entities"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/persistence/schema"
	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
)

// CurrentVersion is the schema version Encode writes
const CurrentVersion = 2

// xzMagic opens every xz stream
var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// Paragraph is one outline record as stored in a bundle
type Paragraph struct {
	ID    int    `json:"id"`
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Payload is the current-version bundle content
type Payload struct {
	DraftID     string                           `json:"draft_id,omitempty"`
	Header      valueobjects.LetterHeader        `json:"header"`
	Routing     valueobjects.RoutingLists        `json:"routing"`
	Endorsement *valueobjects.EndorsementContext `json:"endorsement,omitempty"`
	Paragraphs  []Paragraph                      `json:"paragraphs"`
}

// Envelope wraps a payload with its schema version and checksum. The
// checksum is the BLAKE3-256 hex digest of the payload bytes exactly as
// they appear in the envelope.
type Envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Checksum      string          `json:"checksum"`
	Payload       json.RawMessage `json:"payload"`
}

// Options controls encoding. A zero SchemaVersion writes CurrentVersion.
type Options struct {
	Compress      bool
	SchemaVersion int
}

var _ ports.BundleCodec = (*Codec)(nil)

// Codec converts between payloads and bundle bytes
type Codec struct {
	evolution *schema.Evolution
}

// NewCodec creates a codec that understands every registered schema version
func NewCodec() *Codec {
	return &Codec{evolution: NewEvolution()}
}

// Checksum returns the hex BLAKE3-256 digest of data
func Checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Marshal encodes p
func (c *Codec) Marshal(p *Payload, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(context.Background(), &buf, p, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes p to w. Targeting an older schema version rolls the payload
// back through the registered migrations.
func (c *Codec) Encode(ctx context.Context, w io.Writer, p *Payload, opts Options) error {
	if p == nil {
		return pkgerrors.NewCodecError("encode", fmt.Errorf("payload is nil"))
	}
	version := opts.SchemaVersion
	if version == 0 {
		version = CurrentVersion
	}
	if version < 1 || version > c.evolution.Latest() {
		return pkgerrors.NewCodecError("encode", fmt.Errorf("unsupported schema version %d", version))
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return pkgerrors.NewCodecError("encode", err)
	}
	if version < CurrentVersion {
		if raw, err = c.downgrade(ctx, raw, version); err != nil {
			return err
		}
	}

	data, err := json.Marshal(Envelope{
		SchemaVersion: version,
		Checksum:      Checksum(raw),
		Payload:       raw,
	})
	if err != nil {
		return pkgerrors.NewCodecError("encode", err)
	}

	if !opts.Compress {
		if _, err := w.Write(data); err != nil {
			return pkgerrors.NewCodecError("encode", err)
		}
		return nil
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return pkgerrors.NewCodecError("encode", fmt.Errorf("failed to create xz writer: %w", err))
	}
	if _, err := xw.Write(data); err != nil {
		xw.Close()
		return pkgerrors.NewCodecError("encode", err)
	}
	if err := xw.Close(); err != nil {
		return pkgerrors.NewCodecError("encode", err)
	}
	return nil
}

func (c *Codec) downgrade(ctx context.Context, raw []byte, version int) ([]byte, error) {
	doc, err := schema.Decode(raw)
	if err != nil {
		return nil, pkgerrors.NewCodecError("encode", err)
	}
	if _, err := c.evolution.Migrate(ctx, doc, CurrentVersion, version); err != nil {
		return nil, pkgerrors.NewCodecError("migrate", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, pkgerrors.NewCodecError("encode", err)
	}
	return out, nil
}

// Unmarshal decodes bundle bytes, compressed or not
func (c *Codec) Unmarshal(data []byte) (*Payload, error) {
	return c.Decode(context.Background(), bytes.NewReader(data))
}

// Decode reads a bundle from r. Older schema versions are upgraded to the
// current one; a checksum mismatch or a newer schema version is an error.
func (c *Codec) Decode(ctx context.Context, r io.Reader) (*Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkgerrors.NewCodecError("decode", err)
	}
	if bytes.HasPrefix(data, xzMagic) {
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, pkgerrors.NewCodecError("decode", fmt.Errorf("failed to create xz reader: %w", err))
		}
		if data, err = io.ReadAll(xr); err != nil {
			return nil, pkgerrors.NewCodecError("decode", err)
		}
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, pkgerrors.NewCodecError("decode", err)
	}
	if env.SchemaVersion < 1 || env.SchemaVersion > CurrentVersion {
		return nil, pkgerrors.NewCodecError("decode",
			fmt.Errorf("unsupported schema version %d", env.SchemaVersion))
	}
	if got := Checksum(env.Payload); got != env.Checksum {
		return nil, pkgerrors.NewCodecError("decode",
			fmt.Errorf("checksum mismatch: bundle says %s, payload hashes to %s", env.Checksum, got))
	}

	doc, err := schema.Decode(env.Payload)
	if err != nil {
		return nil, pkgerrors.NewCodecError("decode", err)
	}
	if _, err := c.evolution.Migrate(ctx, doc, env.SchemaVersion, CurrentVersion); err != nil {
		return nil, pkgerrors.NewCodecError("migrate", err)
	}

	var p Payload
	if err := schema.Convert(doc, &p); err != nil {
		return nil, pkgerrors.NewCodecError("decode", err)
	}
	return &p, nil
}

// FromDraft captures a draft as a payload. Advisory warnings are derived
// data and are not exported.
func FromDraft(d *aggregates.LetterDraft) *Payload {
	snapshot := d.Paragraphs().Snapshot()
	paragraphs := make([]Paragraph, len(snapshot))
	for i, p := range snapshot {
		paragraphs[i] = Paragraph{ID: p.ID().Int(), Level: p.Level().Int(), Text: p.Text()}
	}
	return &Payload{
		DraftID:     d.ID().String(),
		Header:      d.Header(),
		Routing:     d.Routing(),
		Endorsement: d.Endorsement(),
		Paragraphs:  paragraphs,
	}
}

// ToDraft rebuilds a draft from the payload. A payload without a draft id
// gets a fresh one.
func (p *Payload) ToDraft() (*aggregates.LetterDraft, error) {
	var id aggregates.DraftID
	if p.DraftID != "" {
		parsed, err := aggregates.ParseDraftID(p.DraftID)
		if err != nil {
			return nil, pkgerrors.NewValidationError("invalid draft id in bundle").WithCause(err)
		}
		id = parsed
	}

	paragraphs := make([]entities.Paragraph, len(p.Paragraphs))
	for i, rec := range p.Paragraphs {
		paragraphs[i] = entities.NewParagraph(valueobjects.NewParagraphID(rec.ID), rec.Level, rec.Text)
	}
	store, err := aggregates.RestoreParagraphStore(paragraphs)
	if err != nil {
		return nil, err
	}
	return aggregates.ReconstructLetterDraft(id, p.Header, p.Routing, p.Endorsement, store), nil
}

// Export encodes a draft
func (c *Codec) Export(ctx context.Context, draft *aggregates.LetterDraft, opts ports.ExportOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, pkgerrors.NewCodecError("encode", fmt.Errorf("draft is nil"))
	}
	var buf bytes.Buffer
	err := c.Encode(ctx, &buf, FromDraft(draft), Options{
		Compress:      opts.Compress,
		SchemaVersion: opts.SchemaVersion,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import decodes a bundle and rebuilds the draft it holds
func (c *Codec) Import(ctx context.Context, data []byte) (*aggregates.LetterDraft, error) {
	p, err := c.Decode(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return p.ToDraft()
}
