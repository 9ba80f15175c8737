package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guidekit/guidekit/internal/cli/wizard"
	"github.com/guidekit/guidekit/internal/config"
	"github.com/guidekit/guidekit/internal/content"
	"github.com/guidekit/guidekit/internal/engine"
	"github.com/guidekit/guidekit/internal/output"
	"github.com/guidekit/guidekit/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [project-dir]",
	Short: "Ask the configuration questions and generate documents",
	Long: `Initialize a project: ask the configuration questions, save the
answers to guidekit.yaml, and generate the selected documents.

Usage patterns:
  guidekit init              Initialize the current directory
  guidekit init my-app       Create ./my-app/ and initialize inside

In non-interactive mode (no TTY, or --non-interactive) questions are
answered from their defaults; individual answers can be supplied with
repeated --answer id=value flags. List answers are comma-separated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("content-dir", "", "Directory with custom questions/rules/fragments YAML")
	initCmd.Flags().Bool("non-interactive", false, "Skip the interactive wizard; use defaults and --answer values")
	initCmd.Flags().StringArray("answer", nil, "Answer override as id=value (repeatable)")
}

func runInit(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	out := cmd.OutOrStdout()

	projectRoot, err := resolveProjectRoot(args)
	if err != nil {
		return err
	}

	repo := content.NewRepository(getStringFlag(cmd, "content-dir"), content.NewCache(), log)
	set, err := repo.Load()
	if err != nil {
		return err
	}

	overrides, err := parseAnswerFlags(getStringArrayFlag(cmd, "answer"))
	if err != nil {
		return err
	}

	hm := ui.NewHeadlessManager()
	if getBoolFlag(cmd, "non-interactive") {
		hm.ForceHeadless(true)
	}
	hm.SetOverrides(overrides)

	theme := ui.NewTheme()
	collector := wizard.NewCollector(set.Questions, theme, hm)
	answers, err := collector.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			_, _ = fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		return err
	}

	result := engine.NewAnswerValidator().Validate(answers, set.Questions)
	if !result.Valid {
		for _, answerErr := range result.Errors {
			_, _ = fmt.Fprintf(out, "Error: %s\n", answerErr.Error())
		}
		return fmt.Errorf("%d answer(s) failed validation", len(result.Errors))
	}

	cfg := engine.BuildConfiguration(answers, set.Questions)

	store := config.NewStore(projectRoot, log)
	if err := store.Save(cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Saved %s\n", store.Path())

	spin := ui.NewSpinner(theme, hm, "Generating documents...")
	pipeline := engine.NewGenerationPipeline(engine.WithLogger(log))
	generated, err := pipeline.Generate(cfg, set.Rules, set.Fragments, cfg.Outputs.Documents)
	spin.Stop()
	if err != nil {
		return err
	}

	sink := output.NewSink(projectRoot, log)
	written, err := sink.Write(generated)
	if err != nil {
		return err
	}

	printWarnings(out, generated.Metadata.Warnings)
	for _, docErr := range generated.Errors {
		_, _ = fmt.Fprintf(out, "Error: document %q: %v\n", docErr.Document, docErr.Err)
	}
	for _, rel := range written.Written {
		_, _ = fmt.Fprintf(out, "Wrote %s\n", filepath.Join(projectRoot, rel))
	}

	return nil
}

// resolveProjectRoot maps the optional positional argument to a directory,
// creating it when a new name is given.
func resolveProjectRoot(args []string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	if len(args) == 0 || args[0] == "." {
		return cwd, nil
	}

	root := filepath.Join(cwd, args[0])
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create project directory %q: %w", root, err)
	}
	return root, nil
}

// parseAnswerFlags converts repeated id=value flags to an override map.
func parseAnswerFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(flags))
	for _, flag := range flags {
		id, value, ok := strings.Cut(flag, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid --answer value %q: expected id=value", flag)
		}
		overrides[strings.TrimSpace(id)] = value
	}
	return overrides, nil
}

// getStringArrayFlag retrieves a string array flag value from the command.
func getStringArrayFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		return nil
	}
	return val
}
