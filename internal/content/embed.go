package content

import "embed"

// defaultContent carries the built-in question, rule, and fragment set so
// the tool works out of the box without a content directory.
//
//go:embed defaults/questions.yaml defaults/rules.yaml defaults/fragments.yaml
var defaultContent embed.FS
