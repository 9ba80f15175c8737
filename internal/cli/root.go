// Package cli wires the guidekit commands: init runs the question flow and
// generates a first set of documents, generate re-runs generation from a
// saved configuration, and preview renders a single document to the terminal.
package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/guidekit/guidekit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "guidekit",
	Short: "guidekit: AI assistant guideline generator",
	Long: `guidekit generates AI assistant guideline documents (CLAUDE.md,
copilot instructions, cursor rules, and more) from a short interactive
questionnaire about your project.

Answers are saved to guidekit.yaml so documents can be regenerated
headlessly when the content set or configuration changes.`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("guidekit %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// newLogger builds the command logger, honoring --verbose.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(logrus.WarnLevel)
	if getBoolFlag(cmd, "verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getStringSliceFlag retrieves a string slice flag value from the command.
func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}

// printWarnings writes generation warnings to the given writer.
func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}
