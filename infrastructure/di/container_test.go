package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/commands"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/queries"
	domainconfig "github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/rendering"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Environment = "test"
	return cfg
}

func TestInitializeContainer(t *testing.T) {
	c, err := InitializeContainer(testConfig())
	require.NoError(t, err)
	defer c.Shutdown()

	assert.NotNil(t, c.Logger)
	assert.NotNil(t, c.Letters)
	assert.NotNil(t, c.CommandBus)
	assert.NotNil(t, c.QueryBus)
	assert.NotNil(t, c.Tracing)
	assert.Equal(t, domainconfig.RegimeProportional, c.Format.Regime)
}

func TestInitializeContainer_InvalidFormat(t *testing.T) {
	cfg := testConfig()
	cfg.MaxLevel = 0

	_, err := InitializeContainer(cfg)
	assert.Error(t, err)
}

func TestContainer_EndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Regime = string(domainconfig.RegimeFixedWidth)

	c, err := InitializeContainer(cfg)
	require.NoError(t, err)

	result, err := c.CommandBus.Send(ctx, commands.CreateDraftCommand{})
	require.NoError(t, err)
	id := result.(string)

	_, err = c.CommandBus.Send(ctx, commands.UpdateParagraphCommand{DraftID: id, ParagraphID: 1, Text: "Body."})
	require.NoError(t, err)

	rendered, err := c.QueryBus.Ask(ctx, queries.RenderLetterQuery{DraftID: id})
	require.NoError(t, err)
	doc := rendered.(*rendering.Document)
	assert.Equal(t, domainconfig.RegimeFixedWidth, doc.Regime, "configured regime is the default")

	_, err = c.QueryBus.Ask(ctx, queries.RenderLetterQuery{DraftID: id})
	require.NoError(t, err)

	families, err := c.Metrics.GetRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestContainer_TracesEdits(t *testing.T) {
	ctx := context.Background()
	c, err := InitializeContainer(testConfig())
	require.NoError(t, err)
	defer c.Shutdown()

	recorder := tracetest.NewSpanRecorder()
	c.Tracing.RegisterSpanProcessor(recorder)

	result, err := c.CommandBus.Send(ctx, commands.CreateDraftCommand{})
	require.NoError(t, err)
	_, err = c.CommandBus.Send(ctx, commands.UpdateParagraphCommand{DraftID: result.(string), ParagraphID: 1, Text: "Body."})
	require.NoError(t, err)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "LetterService.Edit", ended[0].Name())
}

func TestContainer_TracingDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.TraceSampleRate = 0
	c, err := InitializeContainer(cfg)
	require.NoError(t, err)
	defer c.Shutdown()

	recorder := tracetest.NewSpanRecorder()
	c.Tracing.RegisterSpanProcessor(recorder)

	result, err := c.CommandBus.Send(context.Background(), commands.CreateDraftCommand{})
	require.NoError(t, err)
	_, err = c.QueryBus.Ask(context.Background(), queries.RenderLetterQuery{DraftID: result.(string)})
	require.NoError(t, err)

	assert.Empty(t, recorder.Ended())
}
