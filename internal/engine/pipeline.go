package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/guidekit/guidekit/pkg/models"
)

// GenerationMetadata captures what a generation run applied, for downstream
// diffing and auditing.
type GenerationMetadata struct {
	AppliedContentIDs   []string                    `json:"appliedContentIds"`
	Concepts            []string                    `json:"concepts"`
	GeneratedAt         time.Time                   `json:"generatedAt"`
	SourceConfiguration models.ProjectConfiguration `json:"sourceConfiguration"`
	Warnings            []string                    `json:"warnings,omitempty"`
}

// GeneratedOutput is the result of one generation run: the rendered
// documents, run metadata, and any per-document errors. A document either
// fully renders or appears in Errors — never both, and never half-written.
type GeneratedOutput struct {
	Documents map[models.DocumentType]string
	Metadata  GenerationMetadata
	Errors    []DocumentError
}

// PipelineOption configures a GenerationPipeline.
type PipelineOption func(*GenerationPipeline)

// WithClock overrides the pipeline's time source. Tests inject a fixed clock
// to make generated output byte-identical across runs.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *GenerationPipeline) {
		p.now = now
	}
}

// WithLogger sets the pipeline's logger.
func WithLogger(log *logrus.Logger) PipelineOption {
	return func(p *GenerationPipeline) {
		p.log = log
	}
}

// GenerationPipeline orchestrates rule evaluation and document assembly.
// Generation is synchronous and pure apart from the injected clock: the same
// configuration, rule set, and content set yield byte-identical documents
// and identical applied-content ordering.
type GenerationPipeline struct {
	rules     *RuleEngine
	assembler *DocumentAssembler
	log       *logrus.Logger
	now       func() time.Time
}

// NewGenerationPipeline creates a pipeline with the default engine,
// assembler, and wall clock.
func NewGenerationPipeline(opts ...PipelineOption) *GenerationPipeline {
	p := &GenerationPipeline{
		rules:     NewRuleEngine(),
		assembler: NewDocumentAssembler(),
		log:       logrus.New(),
		now:       time.Now,
	}
	p.log.SetLevel(logrus.WarnLevel)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate produces the requested documents from a resolved configuration.
// Unknown document names fail individually while the rest still render
// (partial success across independent documents). A request where every
// known document resolves to zero fragments fails hard with
// ErrNoApplicableContent; a single empty document renders header and footer
// only and adds a metadata warning.
func (p *GenerationPipeline) Generate(
	cfg models.ProjectConfiguration,
	rules []ConditionRule,
	fragments []ContentFragment,
	requested []string,
) (*GeneratedOutput, error) {
	out := &GeneratedOutput{Documents: make(map[models.DocumentType]string)}

	var targets []models.DocumentType
	for _, name := range requested {
		doc, ok := models.ParseDocumentType(name)
		if !ok {
			p.log.WithField("document", name).Warn("unknown document type requested")
			out.Errors = append(out.Errors, DocumentError{
				Document: name,
				Err:      fmt.Errorf("%w: %q", ErrUnknownDocumentType, name),
			})
			continue
		}
		targets = append(targets, doc)
	}

	selection := p.rules.Select(cfg, rules)
	for _, drop := range selection.Dropped {
		out.Metadata.Warnings = append(out.Metadata.Warnings,
			fmt.Sprintf("content %q dropped: conflicts with higher-priority %q", drop.ContentID, drop.Winner))
	}

	if len(targets) > 0 {
		total := 0
		for _, doc := range targets {
			total += p.assembler.FragmentCount(doc, selection.ContentIDs, fragments)
		}
		if total == 0 {
			return nil, fmt.Errorf("%w (selected %d fragments, %d requested documents)",
				ErrNoApplicableContent, len(selection.ContentIDs), len(targets))
		}
	}

	generatedAt := p.now()
	start := time.Now()

	out.Documents = p.assembler.Assemble(selection.ContentIDs, fragments, targets, cfg, generatedAt)
	for _, doc := range targets {
		if p.assembler.FragmentCount(doc, selection.ContentIDs, fragments) == 0 {
			out.Metadata.Warnings = append(out.Metadata.Warnings,
				fmt.Sprintf("document %q matched no content fragments", doc))
		}
	}

	out.Metadata.AppliedContentIDs = selection.ContentIDs
	out.Metadata.Concepts = selection.Concepts
	out.Metadata.GeneratedAt = generatedAt
	out.Metadata.SourceConfiguration = cfg

	p.log.WithFields(logrus.Fields{
		"documents": len(out.Documents),
		"fragments": len(selection.ContentIDs),
		"duration":  time.Since(start),
	}).Info("generation complete")

	return out, nil
}
