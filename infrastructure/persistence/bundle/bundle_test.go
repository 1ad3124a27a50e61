package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/ports"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/aggregates"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/valueobjects"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/rendering"
	pkgerrors "github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/errors"
)

func sampleDraft(t *testing.T) *aggregates.LetterDraft {
	t.Helper()
	d := aggregates.NewLetterDraft()
	d.UpdateHeader(valueobjects.LetterHeader{
		SSIC:    "5216",
		Date:    "16 Oct 26",
		From:    "Commanding Officer, USS Example",
		To:      "Commander, Naval Surface Force",
		Subject: "Bundle round trip",
		Signature: valueobjects.Signature{
			Name: "J. Q. Public",
		},
	})
	d.UpdateRouting(valueobjects.RoutingLists{
		Via:        []string{"Commander, Destroyer Squadron"},
		References: []string{"OPNAVINST 5216.1"},
		CopyTo:     []string{"File"},
	})
	d.SetEndorsement(&valueobjects.EndorsementContext{
		Level:                   1,
		BasicLetterReference:    "CO ltr of 1 Oct 26",
		StartingReferenceLetter: "b",
	})

	e := aggregates.NewOutlineEditor(d.Paragraphs(), nil, nil)
	require.NoError(t, e.UpdateContent(1, "Main paragraph."))
	sub, err := e.AddParagraph(aggregates.KindSub, 1)
	require.NoError(t, err)
	require.NoError(t, e.UpdateContent(sub.ID(), "Lone subparagraph."))
	return d
}

func render(t *testing.T, d *aggregates.LetterDraft, regime config.Regime) *rendering.Document {
	t.Helper()
	profile, err := rendering.ProfileFor(regime, nil)
	require.NoError(t, err)
	doc, err := rendering.NewLetterSerializer(profile, nil, nil).Serialize(rendering.LetterInput{
		Header:      d.Header(),
		Routing:     d.Routing(),
		Paragraphs:  d.Paragraphs().Snapshot(),
		Endorsement: d.Endorsement(),
	})
	require.NoError(t, err)
	return doc
}

func TestCodec_RoundTrip(t *testing.T) {
	ctx := context.Background()
	codec := NewCodec()

	for _, compress := range []bool{false, true} {
		original := sampleDraft(t)

		data, err := codec.Export(ctx, original, ports.ExportOptions{Compress: compress})
		require.NoError(t, err)
		assert.Equal(t, compress, bytes.HasPrefix(data, xzMagic))

		imported, err := codec.Import(ctx, data)
		require.NoError(t, err)

		assert.Equal(t, original.ID(), imported.ID())
		assert.Equal(t, original.Header(), imported.Header())
		assert.Equal(t, original.Endorsement(), imported.Endorsement())
		for _, regime := range []config.Regime{config.RegimeProportional, config.RegimeFixedWidth} {
			want := render(t, original, regime)
			got := render(t, imported, regime)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s (compress=%v) rendering changed across export/import (-want +got):\n%s", regime, compress, diff)
			}
		}
	}
}

func TestCodec_DoesNotExportWarnings(t *testing.T) {
	d := sampleDraft(t)
	aggregates.NewOutlineEditor(d.Paragraphs(), nil, nil).RefreshWarnings()

	data, err := NewCodec().Export(context.Background(), d, ports.ExportOptions{})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "requires at least one sibling")
}

func TestCodec_EnvelopeFormat(t *testing.T) {
	data, err := NewCodec().Marshal(&Payload{Paragraphs: []Paragraph{{ID: 1, Level: 1, Text: "x"}}}, Options{})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, CurrentVersion, env.SchemaVersion)
	assert.Equal(t, Checksum(env.Payload), env.Checksum)
	assert.Len(t, env.Checksum, 64)
}

func TestCodec_ChecksumMismatch(t *testing.T) {
	codec := NewCodec()
	data, err := codec.Marshal(&Payload{Paragraphs: []Paragraph{{ID: 1, Level: 1, Text: "original"}}}, Options{})
	require.NoError(t, err)

	tampered := bytes.Replace(data, []byte("original"), []byte("tampered"), 1)
	_, err = codec.Unmarshal(tampered)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeCodec))
	assert.ErrorContains(t, err, "checksum mismatch")
}

func TestCodec_RejectsBadInput(t *testing.T) {
	codec := NewCodec()

	tests := []struct {
		name string
		data string
	}{
		{"not json", "letter"},
		{"future version", `{"schema_version":3,"checksum":"","payload":{}}`},
		{"zero version", `{"schema_version":0,"checksum":"","payload":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Unmarshal([]byte(tt.data))
			assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeCodec))
		})
	}

	_, err := codec.Export(context.Background(), nil, ports.ExportOptions{})
	assert.Error(t, err)
}

func TestCodec_UpgradesVersionOne(t *testing.T) {
	payload := []byte(`{` +
		`"draft_id":"7b2d9c1e-4f0a-4a4e-9a55-1c2d3e4f5a6b",` +
		`"header":{"from":"CO","to":"XO","subject":"Legacy"},` +
		`"via":["Dept Head"],` +
		`"references":["ref one","ref two"],` +
		`"enclosures":[],` +
		`"copy_to":["File"],` +
		`"paragraphs":[{"id":1,"level":1,"content":"Body"},{"id":2,"level":2,"content":"Sub"}]` +
		`}`)
	env, err := json.Marshal(Envelope{SchemaVersion: 1, Checksum: Checksum(payload), Payload: payload})
	require.NoError(t, err)

	codec := NewCodec()
	p, err := codec.Unmarshal(env)
	require.NoError(t, err)

	assert.Equal(t, "7b2d9c1e-4f0a-4a4e-9a55-1c2d3e4f5a6b", p.DraftID)
	assert.Equal(t, "Legacy", p.Header.Subject)
	assert.Equal(t, []string{"Dept Head"}, p.Routing.Via)
	assert.Equal(t, []string{"ref one", "ref two"}, p.Routing.References)
	assert.Empty(t, p.Routing.Enclosures)
	assert.Equal(t, []string{"File"}, p.Routing.CopyTo)
	assert.Equal(t, []Paragraph{
		{ID: 1, Level: 1, Text: "Body"},
		{ID: 2, Level: 2, Text: "Sub"},
	}, p.Paragraphs)

	d, err := codec.Import(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Paragraphs().Len())
	assert.Equal(t, []string{""}, d.Routing().Enclosures)
}

func TestPayload_ToDraft(t *testing.T) {
	t.Run("missing id gets a fresh one", func(t *testing.T) {
		d, err := (&Payload{}).ToDraft()
		require.NoError(t, err)
		_, err = aggregates.ParseDraftID(d.ID().String())
		assert.NoError(t, err)
		assert.Equal(t, 1, d.Paragraphs().Len())
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := (&Payload{DraftID: "letter-1"}).ToDraft()
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("duplicate paragraph ids", func(t *testing.T) {
		_, err := (&Payload{Paragraphs: []Paragraph{{ID: 1, Level: 1}, {ID: 1, Level: 2}}}).ToDraft()
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("levels are clamped", func(t *testing.T) {
		d, err := (&Payload{Paragraphs: []Paragraph{{ID: 1, Level: 0}, {ID: 2, Level: 12}}}).ToDraft()
		require.NoError(t, err)
		snapshot := d.Paragraphs().Snapshot()
		assert.Equal(t, 1, snapshot[0].Level().Int())
		assert.Equal(t, 8, snapshot[1].Level().Int())
	})
}

func TestCodec_ExportsOlderSchemaVersion(t *testing.T) {
	ctx := context.Background()
	codec := NewCodec()
	original := sampleDraft(t)

	data, err := codec.Export(ctx, original, ports.ExportOptions{SchemaVersion: 1})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, 1, env.SchemaVersion)
	assert.Equal(t, Checksum(env.Payload), env.Checksum)

	var legacy map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Payload, &legacy))
	assert.NotContains(t, legacy, "routing")
	assert.Equal(t, []interface{}{"Commander, Destroyer Squadron"}, legacy["via"])
	first := legacy["paragraphs"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Main paragraph.", first["content"])

	imported, err := codec.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, FromDraft(original), FromDraft(imported))
}

func TestCodec_RejectsUnknownTargetVersion(t *testing.T) {
	codec := NewCodec()
	p := &Payload{Paragraphs: []Paragraph{{ID: 1, Level: 1, Text: "x"}}}

	for _, version := range []int{-1, CurrentVersion + 1} {
		_, err := codec.Marshal(p, Options{SchemaVersion: version})
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeCodec), "version %d", version)
	}

	data, err := codec.Marshal(p, Options{SchemaVersion: CurrentVersion, Compress: true})
	require.NoError(t, err)
	got, err := codec.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, p.Paragraphs, got.Paragraphs)
}

func TestMigrations_Downgrade(t *testing.T) {
	evolution := NewEvolution()
	doc := map[string]interface{}{
		"routing": map[string]interface{}{
			"via":        []interface{}{"CO"},
			"references": []interface{}{},
		},
		"paragraphs": []interface{}{
			map[string]interface{}{"id": 1.0, "level": 1.0, "text": "Body"},
		},
	}

	_, err := evolution.Migrate(context.Background(), doc, 2, 1)

	require.NoError(t, err)
	assert.NotContains(t, doc, "routing")
	assert.Equal(t, []interface{}{"CO"}, doc["via"])
	paragraph := doc["paragraphs"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Body", paragraph["content"])
	assert.NotContains(t, paragraph, "text")
}
