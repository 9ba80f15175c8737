// Package output writes generated documents to a project directory. Each
// document type has a fixed destination path; existing files are backed up
// before being replaced, and a metadata sidecar records what the run applied.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/guidekit/guidekit/internal/engine"
	"github.com/guidekit/guidekit/pkg/models"
)

// MetadataFile is the sidecar written next to the generated documents.
const MetadataFile = "guidekit.meta.json"

// BackupSuffix is appended to a file's name before it is overwritten.
const BackupSuffix = ".bak"

var (
	// ErrUnmappedDocument indicates a document type with no destination path.
	ErrUnmappedDocument = errors.New("output: no destination path for document")

	// ErrPathEscape indicates a destination path outside the project root.
	ErrPathEscape = errors.New("output: destination escapes project root")
)

// documentPaths maps each document type to its path relative to the project
// root, using the location each tool actually reads from.
var documentPaths = map[models.DocumentType]string{
	models.DocClaude:       "CLAUDE.md",
	models.DocCopilot:      ".github/copilot-instructions.md",
	models.DocCursor:       ".cursorrules",
	models.DocRoocode:      ".roorules",
	models.DocReadme:       "README.md",
	models.DocEditorConfig: ".editorconfig",
}

// DocumentPath returns the destination path for a document type, relative to
// the project root.
func DocumentPath(doc models.DocumentType) (string, bool) {
	path, ok := documentPaths[doc]
	return path, ok
}

// WriteResult reports what one Write call did on disk.
type WriteResult struct {
	Written  []string // relative paths written, sorted
	BackedUp []string // relative paths that had a previous version backed up
	Metadata string   // relative path of the metadata sidecar
}

// Sink writes generated output under a project root directory.
type Sink struct {
	root string
	log  *logrus.Logger
}

// NewSink creates a Sink rooted at dir.
func NewSink(dir string, log *logrus.Logger) *Sink {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Sink{root: filepath.Clean(dir), log: log}
}

// Write persists every document in out to its destination path, backing up
// any file it replaces, then writes the metadata sidecar. Documents are
// written in path order so repeated runs touch the filesystem in the same
// sequence.
func (s *Sink) Write(out *engine.GeneratedOutput) (*WriteResult, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("output: create project root %q: %w", s.root, err)
	}

	type target struct {
		rel  string
		body string
	}
	targets := make([]target, 0, len(out.Documents))
	for doc, body := range out.Documents {
		rel, ok := documentPaths[doc]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnmappedDocument, doc)
		}
		targets = append(targets, target{rel: rel, body: body})
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].rel < targets[j].rel })

	result := &WriteResult{}
	for _, t := range targets {
		backedUp, err := s.writeFile(t.rel, []byte(t.body))
		if err != nil {
			return nil, err
		}
		result.Written = append(result.Written, t.rel)
		if backedUp {
			result.BackedUp = append(result.BackedUp, t.rel)
		}
		s.log.WithField("path", t.rel).Debug("document written")
	}

	sidecar, err := json.MarshalIndent(out.Metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("output: encode metadata: %w", err)
	}
	if _, err := s.writeFile(MetadataFile, append(sidecar, '\n')); err != nil {
		return nil, err
	}
	result.Metadata = MetadataFile

	s.log.WithFields(logrus.Fields{
		"documents": len(result.Written),
		"backups":   len(result.BackedUp),
	}).Info("output written")
	return result, nil
}

// writeFile writes rel under the root, creating parent directories and
// backing up any existing file first. It reports whether a backup was made.
func (s *Sink) writeFile(rel string, content []byte) (bool, error) {
	if err := s.validatePath(rel); err != nil {
		return false, err
	}
	dest := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, fmt.Errorf("output: mkdir for %q: %w", rel, err)
	}

	backedUp := false
	if _, err := os.Stat(dest); err == nil {
		if err := os.Rename(dest, dest+BackupSuffix); err != nil {
			return false, fmt.Errorf("output: back up %q: %w", rel, err)
		}
		backedUp = true
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("output: stat %q: %w", rel, err)
	}

	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return false, fmt.Errorf("output: write %q: %w", rel, err)
	}
	return backedUp, nil
}

// validatePath ensures a relative destination stays inside the project root.
func (s *Sink) validatePath(rel string) error {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathEscape, rel)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathEscape, rel)
	}

	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return fmt.Errorf("output: resolve project root: %w", err)
	}
	absDest := filepath.Join(absRoot, cleaned)
	if absDest != absRoot && !strings.HasPrefix(absDest, absRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q", ErrPathEscape, rel)
	}
	return nil
}
