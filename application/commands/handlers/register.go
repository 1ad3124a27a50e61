package handlers

import (
	"context"
	"fmt"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/commands"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/commands/bus"
)

// Register wires every letter command to its handler on b
func Register(b *bus.CommandBus, drafts *DraftHandlers, outline *OutlineHandlers) error {
	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateDraftCommand{}, typed(drafts.HandleCreate)},
		{commands.DeleteDraftCommand{}, void(drafts.HandleDelete)},
		{commands.UpdateHeaderCommand{}, void(drafts.HandleUpdateHeader)},
		{commands.UpdateRoutingCommand{}, void(drafts.HandleUpdateRouting)},
		{commands.SetEndorsementCommand{}, void(drafts.HandleSetEndorsement)},
		{commands.ImportBundleCommand{}, typed(drafts.HandleImport)},
		{commands.AddParagraphCommand{}, typed(outline.HandleAdd)},
		{commands.RemoveParagraphCommand{}, typed(outline.HandleRemove)},
		{commands.CommitRemovalCommand{}, typed(outline.HandleCommitRemoval)},
		{commands.MoveParagraphCommand{}, typed(outline.HandleMove)},
		{commands.UpdateParagraphCommand{}, void(outline.HandleUpdate)},
	}

	for _, r := range registrations {
		if err := b.Register(r.cmd, r.handler); err != nil {
			return err
		}
	}
	return nil
}

// typed adapts a handler method for one concrete command type
func typed[C bus.Command, R any](fn func(context.Context, C) (R, error)) bus.CommandHandler {
	return bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
		c, ok := cmd.(C)
		if !ok {
			return nil, fmt.Errorf("unexpected command type %T", cmd)
		}
		return fn(ctx, c)
	})
}

// void adapts a handler method that produces no result
func void[C bus.Command](fn func(context.Context, C) error) bus.CommandHandler {
	return typed(func(ctx context.Context, c C) (interface{}, error) {
		return nil, fn(ctx, c)
	})
}
