package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/guidekit/guidekit/internal/config"
	"github.com/guidekit/guidekit/internal/content"
	"github.com/guidekit/guidekit/internal/engine"
	"github.com/guidekit/guidekit/internal/output"
)

var generateCmd = &cobra.Command{
	Use:   "generate [project-dir]",
	Short: "Regenerate documents from a saved configuration",
	Long: `Regenerate documents from the guidekit.yaml saved by "guidekit init".

Runs headlessly: no questions are asked. The document selection from the
configuration can be narrowed with --docs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringSlice("docs", nil, "Documents to generate (default: selection from guidekit.yaml)")
	generateCmd.Flags().String("out", "", "Output directory (default: the project directory)")
	generateCmd.Flags().String("content-dir", "", "Directory with custom questions/rules/fragments YAML")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	out := cmd.OutOrStdout()

	projectRoot, err := projectDirArg(args)
	if err != nil {
		return err
	}

	cfg, err := config.NewStore(projectRoot, log).Load()
	if err != nil {
		return err
	}

	set, err := content.NewRepository(getStringFlag(cmd, "content-dir"), content.NewCache(), log).Load()
	if err != nil {
		return err
	}

	docs := getStringSliceFlag(cmd, "docs")
	if len(docs) == 0 {
		docs = cfg.Outputs.Documents
	}

	pipeline := engine.NewGenerationPipeline(engine.WithLogger(log))
	generated, err := pipeline.Generate(cfg, set.Rules, set.Fragments, docs)
	if err != nil {
		return err
	}

	outDir := getStringFlag(cmd, "out")
	if outDir == "" {
		outDir = projectRoot
	}

	written, err := output.NewSink(outDir, log).Write(generated)
	if err != nil {
		return err
	}

	printWarnings(out, generated.Metadata.Warnings)
	for _, docErr := range generated.Errors {
		_, _ = fmt.Fprintf(out, "Error: document %q: %v\n", docErr.Document, docErr.Err)
	}
	for _, rel := range written.Written {
		_, _ = fmt.Fprintf(out, "Wrote %s\n", filepath.Join(outDir, rel))
	}
	if len(generated.Errors) > 0 {
		return fmt.Errorf("%d document(s) failed", len(generated.Errors))
	}

	return nil
}

// projectDirArg maps the optional positional argument to an existing
// directory; unlike init it never creates one.
func projectDirArg(args []string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	if len(args) == 0 || args[0] == "." {
		return cwd, nil
	}

	dir := filepath.Join(cwd, args[0])
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("project directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project path %q is not a directory", dir)
	}
	return dir, nil
}
