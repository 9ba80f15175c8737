package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/guidekit/guidekit/internal/config"
	"github.com/guidekit/guidekit/internal/content"
	"github.com/guidekit/guidekit/internal/engine"
	"github.com/guidekit/guidekit/pkg/models"
)

var previewCmd = &cobra.Command{
	Use:   "preview [document]",
	Short: "Render one document to the terminal without writing files",
	Long: `Preview a single generated document (default: claude) on stdout.

Markdown documents are rendered with terminal styling when stdout is a
TTY; otherwise the raw document is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("content-dir", "", "Directory with custom questions/rules/fragments YAML")
	previewCmd.Flags().Bool("raw", false, "Print the raw document without terminal styling")
}

func runPreview(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	name := string(models.DocClaude)
	if len(args) > 0 {
		name = args[0]
	}
	doc, ok := models.ParseDocumentType(name)
	if !ok {
		return fmt.Errorf("unknown document %q (known: %v)", name, models.AllDocumentTypes())
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := config.NewStore(cwd, log).Load()
	if err != nil {
		return err
	}

	set, err := content.NewRepository(getStringFlag(cmd, "content-dir"), content.NewCache(), log).Load()
	if err != nil {
		return err
	}

	pipeline := engine.NewGenerationPipeline(engine.WithLogger(log))
	generated, err := pipeline.Generate(cfg, set.Rules, set.Fragments, []string{string(doc)})
	if err != nil {
		return err
	}
	body, ok := generated.Documents[doc]
	if !ok {
		return fmt.Errorf("document %q did not render", doc)
	}

	out := cmd.OutOrStdout()
	if shouldStyle(cmd, doc) {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if styled, err := renderer.Render(body); err == nil {
				_, _ = fmt.Fprint(out, styled)
				return nil
			}
		}
		// Styling failures fall through to raw output.
	}
	_, _ = fmt.Fprint(out, body)
	return nil
}

// shouldStyle decides whether to run the markdown renderer: only for
// markdown documents, on a TTY, and not under --raw.
func shouldStyle(cmd *cobra.Command, doc models.DocumentType) bool {
	if getBoolFlag(cmd, "raw") || doc == models.DocEditorConfig {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
