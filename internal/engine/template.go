package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/guidekit/guidekit/pkg/models"
)

// The fragment bodies carry a deliberately tiny markup: named placeholders
// and one conditional-block form. Guideline text is non-critical, so
// rendering is best-effort — an unknown placeholder becomes an empty string
// and a malformed block renders literally, never an error.
//
//	{{identity.projectName}}          placeholder, dotted path into the configuration
//	{{#if philosophy.tdd}}...{{/if}}  body kept only when the field is truthy

var (
	placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z][A-Za-z0-9_.]*)\s*\}\}`)
	ifOpenPattern      = regexp.MustCompile(`\{\{#if\s+([A-Za-z][A-Za-z0-9_.]*)\s*\}\}`)
)

const ifClose = "{{/if}}"

// RenderFragment substitutes placeholders and evaluates conditional blocks in
// a fragment body against the configuration.
func RenderFragment(body string, cfg models.ProjectConfiguration) string {
	fields := cfg.FieldMap()
	return substitutePlaceholders(evaluateConditionals(body, fields), fields)
}

// evaluateConditionals strips or keeps {{#if field}}...{{/if}} blocks. Blocks
// do not nest; an unclosed block is left as literal text.
func evaluateConditionals(body string, fields map[string]any) string {
	var out strings.Builder
	rest := body

	for {
		loc := ifOpenPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			out.WriteString(rest)
			return out.String()
		}

		openStart, openEnd := loc[0], loc[1]
		field := rest[loc[2]:loc[3]]

		closeIdx := strings.Index(rest[openEnd:], ifClose)
		if closeIdx < 0 {
			out.WriteString(rest)
			return out.String()
		}

		out.WriteString(rest[:openStart])
		inner := rest[openEnd : openEnd+closeIdx]

		value, defined := resolvePath(fields, field)
		if defined && answerSatisfies(value) {
			out.WriteString(inner)
		}

		rest = rest[openEnd+closeIdx+len(ifClose):]
	}
}

// substitutePlaceholders replaces {{path}} tokens with the stringified field
// value; unresolved paths become empty strings.
func substitutePlaceholders(body string, fields map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(body, func(token string) string {
		path := placeholderPattern.FindStringSubmatch(token)[1]
		value, defined := resolvePath(fields, path)
		if !defined {
			return ""
		}
		return stringifyValue(value)
	})
}

// stringifyValue renders a configuration value for inline substitution.
// Lists join with ", " so fragments can write "tested with {{tools.testingTools}}".
func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringifyValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
