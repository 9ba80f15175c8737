package engine

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/guidekit/guidekit/pkg/models"
)

// FragmentCategory routes a fragment to the document family it belongs to.
type FragmentCategory string

const (
	// CategoryInstructions feeds the primary AI assistant instruction file.
	CategoryInstructions FragmentCategory = "instructions"
	// CategoryRules feeds the per-tool rules files (copilot, cursor, roocode).
	CategoryRules FragmentCategory = "rules"
	// CategoryReadme feeds the generated README.
	CategoryReadme FragmentCategory = "readme"
	// CategoryEditor feeds the editor settings file.
	CategoryEditor FragmentCategory = "editor"
)

// IsValid checks whether the category is a known value.
func (c FragmentCategory) IsValid() bool {
	switch c {
	case CategoryInstructions, CategoryRules, CategoryReadme, CategoryEditor:
		return true
	}
	return false
}

// ContentFragment is one unit of static guideline text. Fragments are loaded
// once from the content repository and never mutated.
type ContentFragment struct {
	ID       string
	Category FragmentCategory
	Section  string
	Body     string // micro-template markup, see template.go
	Weight   int
}

// documentSections is the fixed, ordered section list per document type.
// Section order is part of the output contract: fragments render grouped by
// section in exactly this order, and sections with no fragments are omitted.
var documentSections = map[models.DocumentType][]string{
	models.DocClaude:       {"philosophy", "language", "tools", "quality", "infrastructure"},
	models.DocCopilot:      {"philosophy", "language", "tools", "quality"},
	models.DocCursor:       {"philosophy", "language", "tools", "quality"},
	models.DocRoocode:      {"philosophy", "language", "tools", "quality"},
	models.DocReadme:       {"overview", "setup", "tools", "quality", "infrastructure"},
	models.DocEditorConfig: {"general", "language"},
}

// documentCategories maps each document type to the fragment categories it
// accepts.
var documentCategories = map[models.DocumentType][]FragmentCategory{
	models.DocClaude:       {CategoryInstructions},
	models.DocCopilot:      {CategoryRules},
	models.DocCursor:       {CategoryRules},
	models.DocRoocode:      {CategoryRules},
	models.DocReadme:       {CategoryReadme},
	models.DocEditorConfig: {CategoryEditor},
}

// SectionsFor returns the ordered section list for a document type.
func SectionsFor(doc models.DocumentType) []string {
	sections := documentSections[doc]
	out := make([]string, len(sections))
	copy(out, sections)
	return out
}

// DocumentAssembler groups selected fragments by target document and section
// and renders each document as a single text blob. It never re-sorts within a
// section: the relative order produced by the rule engine is preserved (a
// stable partition).
type DocumentAssembler struct {
	titleCaser cases.Caser
}

// NewDocumentAssembler creates a DocumentAssembler.
func NewDocumentAssembler() *DocumentAssembler {
	return &DocumentAssembler{titleCaser: cases.Title(language.English)}
}

// Assemble renders every target document from the selected fragments.
// selectedIDs carries the rule engine's ordering; fragments is the full
// inventory. The returned map has one entry per target, even when a document
// ends up with header and footer only.
func (a *DocumentAssembler) Assemble(
	selectedIDs []string,
	fragments []ContentFragment,
	targets []models.DocumentType,
	cfg models.ProjectConfiguration,
	generatedAt time.Time,
) map[models.DocumentType]string {
	byID := make(map[string]*ContentFragment, len(fragments))
	for i := range fragments {
		byID[fragments[i].ID] = &fragments[i]
	}

	// Resolve the selection to fragments, keeping the engine's order and
	// dropping ids with no backing fragment (load validation normally
	// prevents those).
	selected := make([]*ContentFragment, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if f, ok := byID[id]; ok {
			selected = append(selected, f)
		}
	}

	out := make(map[models.DocumentType]string, len(targets))
	for _, doc := range targets {
		out[doc] = a.assembleDocument(doc, selected, cfg, generatedAt)
	}
	return out
}

// FragmentCount returns how many of the selected fragments route to the
// given document type. The pipeline uses it to distinguish an empty
// selection from a misconfigured rule set.
func (a *DocumentAssembler) FragmentCount(doc models.DocumentType, selectedIDs []string, fragments []ContentFragment) int {
	byID := make(map[string]*ContentFragment, len(fragments))
	for i := range fragments {
		byID[fragments[i].ID] = &fragments[i]
	}
	count := 0
	for _, id := range selectedIDs {
		if f, ok := byID[id]; ok && categoryAccepted(doc, f.Category) {
			count++
		}
	}
	return count
}

func (a *DocumentAssembler) assembleDocument(
	doc models.DocumentType,
	selected []*ContentFragment,
	cfg models.ProjectConfiguration,
	generatedAt time.Time,
) string {
	var b strings.Builder
	b.WriteString(documentHeader(doc, cfg))

	for _, section := range documentSections[doc] {
		var bodies []string
		for _, f := range selected {
			if f.Section == section && categoryAccepted(doc, f.Category) {
				bodies = append(bodies, strings.TrimRight(RenderFragment(f.Body, cfg), "\n"))
			}
		}
		if len(bodies) == 0 {
			continue // no empty section headers
		}
		b.WriteString("\n")
		b.WriteString(sectionHeader(doc, a.titleCaser.String(section)))
		b.WriteString("\n\n")
		b.WriteString(strings.Join(bodies, "\n\n"))
		b.WriteString("\n")
	}

	b.WriteString(documentFooter(doc, generatedAt))
	return b.String()
}

func categoryAccepted(doc models.DocumentType, category FragmentCategory) bool {
	for _, c := range documentCategories[doc] {
		if c == category {
			return true
		}
	}
	return false
}

// sectionHeader renders a section title in the document's comment/heading
// convention: markdown headings everywhere except .editorconfig, which only
// supports comment lines.
func sectionHeader(doc models.DocumentType, title string) string {
	if doc == models.DocEditorConfig {
		return "# " + title
	}
	return "## " + title
}

// documentHeader applies the per-document title convention with the project
// name injected.
func documentHeader(doc models.DocumentType, cfg models.ProjectConfiguration) string {
	name := cfg.Identity.ProjectName

	switch doc {
	case models.DocClaude:
		h := fmt.Sprintf("# %s — AI Assistant Instructions\n", name)
		if cfg.Identity.Description != "" {
			h += "\n" + cfg.Identity.Description + "\n"
		}
		return h
	case models.DocCopilot:
		return fmt.Sprintf("# %s — Copilot Instructions\n", name)
	case models.DocCursor:
		return fmt.Sprintf("# %s — Cursor Rules\n", name)
	case models.DocRoocode:
		return fmt.Sprintf("# %s — Roo Code Rules\n", name)
	case models.DocReadme:
		h := fmt.Sprintf("# %s\n", name)
		if cfg.Identity.Description != "" {
			h += "\n" + cfg.Identity.Description + "\n"
		}
		return h
	case models.DocEditorConfig:
		return fmt.Sprintf("# %s editor configuration\nroot = true\n", name)
	}
	return fmt.Sprintf("# %s\n", name)
}

// documentFooter applies the per-document trailing generation line.
func documentFooter(doc models.DocumentType, generatedAt time.Time) string {
	ts := generatedAt.UTC().Format(time.RFC3339)

	switch doc {
	case models.DocReadme:
		return fmt.Sprintf("\n<!-- Generated by guidekit at %s -->\n", ts)
	case models.DocEditorConfig:
		return fmt.Sprintf("\n# Generated by guidekit at %s\n", ts)
	default:
		return fmt.Sprintf("\n---\nGenerated by guidekit at %s\n", ts)
	}
}
