package models

// DocumentType identifies one generated output document.
type DocumentType string

const (
	// DocClaude is the primary AI assistant instruction file (CLAUDE.md).
	DocClaude DocumentType = "claude"

	// DocCopilot is the GitHub Copilot instruction file.
	DocCopilot DocumentType = "copilot"

	// DocCursor is the Cursor rules file.
	DocCursor DocumentType = "cursor"

	// DocRoocode is the Roo Code rules file.
	DocRoocode DocumentType = "roocode"

	// DocReadme is the generated project README.
	DocReadme DocumentType = "readme"

	// DocEditorConfig is the editor settings file (.editorconfig).
	DocEditorConfig DocumentType = "editorconfig"
)

// AllDocumentTypes returns every known document type in canonical order.
// The order is stable and user-visible: it determines iteration order in
// generation output and metadata.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocClaude,
		DocCopilot,
		DocCursor,
		DocRoocode,
		DocReadme,
		DocEditorConfig,
	}
}

// IsValid checks whether the document type is a known value.
func (d DocumentType) IsValid() bool {
	switch d {
	case DocClaude, DocCopilot, DocCursor, DocRoocode, DocReadme, DocEditorConfig:
		return true
	}
	return false
}

// ParseDocumentType converts a string to a DocumentType.
// The second return value reports whether the name is known.
func ParseDocumentType(name string) (DocumentType, bool) {
	d := DocumentType(name)
	return d, d.IsValid()
}
