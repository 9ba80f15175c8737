// Command guidekit generates AI assistant guideline documents from a short
// project questionnaire.
package main

import (
	"os"

	"github.com/guidekit/guidekit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
