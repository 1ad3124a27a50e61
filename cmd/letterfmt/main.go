// Command letterfmt reads an export bundle on stdin and writes the formatted
// letter to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/commands"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/application/queries"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/core/validators"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/domain/rendering"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/di"
)

func main() {
	regime := flag.String("regime", "", "spacing regime: proportional or fixed_width (default from config)")
	output := flag.String("output", "text", "output format: text or json")
	warnings := flag.Bool("warnings", false, "print structural warnings to stderr")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Shutdown()

	if err := run(ctx, container, os.Stdin, os.Stdout, os.Stderr, *regime, *output, *warnings); err != nil {
		container.Logger.Error("Formatting failed", zap.Error(err))
		container.Shutdown()
		os.Exit(1)
	}
}

func run(ctx context.Context, c *di.Container, in io.Reader, out, errOut io.Writer, regime, output string, warnings bool) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}

	result, err := c.CommandBus.Send(ctx, commands.ImportBundleCommand{Data: data})
	if err != nil {
		return err
	}
	draftID := result.(string)

	if warnings {
		found, err := c.QueryBus.Ask(ctx, queries.ValidateOutlineQuery{DraftID: draftID})
		if err != nil {
			return err
		}
		for _, w := range found.([]validators.StructuralWarning) {
			fmt.Fprintf(errOut, "warning: %s\n", w.Message)
		}
	}

	rendered, err := c.QueryBus.Ask(ctx, queries.RenderLetterQuery{DraftID: draftID, Regime: regime})
	if err != nil {
		return err
	}
	doc := rendered.(*rendering.Document)

	c.Logger.Debug("Letter rendered",
		zap.String("draft_id", draftID),
		zap.String("regime", string(doc.Regime)),
		zap.Int("lines", len(doc.Lines)),
		zap.String("fingerprint", doc.Fingerprint()),
	)

	switch output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		_, err := io.WriteString(out, doc.PlainText()+"\n")
		return err
	}
}
