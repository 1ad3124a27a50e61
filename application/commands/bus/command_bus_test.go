package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type echoCommand struct {
	Value string
}

func (c echoCommand) Validate() error {
	if c.Value == "" {
		return errors.New("value is required")
	}
	return nil
}

type otherCommand struct{}

func (otherCommand) Validate() error { return nil }

func echoHandler() CommandHandler {
	return CommandHandlerFunc(func(_ context.Context, cmd Command) (interface{}, error) {
		return cmd.(echoCommand).Value, nil
	})
}

func TestCommandBus_Send(t *testing.T) {
	b := NewCommandBus()
	require.NoError(t, b.Register(echoCommand{}, echoHandler()))

	result, err := b.Send(context.Background(), echoCommand{Value: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestCommandBus_Errors(t *testing.T) {
	b := NewCommandBus()
	require.NoError(t, b.Register(echoCommand{}, echoHandler()))

	err := b.Register(echoCommand{}, echoHandler())
	assert.ErrorContains(t, err, "already registered")

	_, err = b.Send(context.Background(), echoCommand{})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorContains(t, err, "value is required")

	_, err = b.Send(context.Background(), otherCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

func TestPipeline_Order(t *testing.T) {
	var calls []string
	trace := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				calls = append(calls, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	b := NewCommandBus(trace("outer"), trace("inner"))
	require.NoError(t, b.Register(echoCommand{}, echoHandler()))

	_, err := b.Send(context.Background(), echoCommand{Value: "x"})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	failing := CommandHandlerFunc(func(context.Context, Command) (interface{}, error) {
		return nil, errors.New("boom")
	})

	b := NewCommandBus(LoggingMiddleware(zap.New(core)))
	require.NoError(t, b.Register(echoCommand{}, echoHandler()))
	require.NoError(t, b.Register(otherCommand{}, failing))

	_, err := b.Send(context.Background(), echoCommand{Value: "x"})
	require.NoError(t, err)
	_, err = b.Send(context.Background(), otherCommand{})
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("Command succeeded").Len())
	failed := logs.FilterMessage("Command failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "otherCommand", failed[0].ContextMap()["type"])
}
