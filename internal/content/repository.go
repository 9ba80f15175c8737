package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/guidekit/guidekit/internal/engine"
)

// Content file names within a content directory.
const (
	QuestionsFile = "questions.yaml"
	RulesFile     = "rules.yaml"
	FragmentsFile = "fragments.yaml"
)

// ErrContentLoad indicates malformed content files. Load failures are fatal:
// no partial content set is ever returned.
var ErrContentLoad = errors.New("content: failed to load content set")

// ContentSet is one immutable, validated snapshot of the loadable data.
type ContentSet struct {
	Questions []engine.Question
	Rules     []engine.ConditionRule
	Fragments []engine.ContentFragment
}

// Cache holds a loaded content set between repository reads. It is owned by
// the caller and injected into the repository, so tests and long-running
// callers control the lifetime explicitly instead of relying on package
// state.
type Cache struct {
	mu  sync.RWMutex
	set *ContentSet
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// get returns the cached set, or nil when empty or invalidated.
func (c *Cache) get() *ContentSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.set
}

func (c *Cache) put(set *ContentSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set = set
}

// Invalidate drops the cached content set; the next Load reads from source.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set = nil
}

// Repository loads questions, rules, and fragments. When a content directory
// is configured and contains content files they win; otherwise the embedded
// default set is used. Loaded data is structurally validated before it is
// returned or cached.
type Repository struct {
	dir   string // optional override directory, "" means embedded only
	cache *Cache
	log   *logrus.Logger
}

// NewRepository creates a Repository reading from dir (may be empty for the
// embedded defaults) with the given caller-owned cache.
func NewRepository(dir string, cache *Cache, log *logrus.Logger) *Repository {
	if cache == nil {
		cache = NewCache()
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Repository{dir: dir, cache: cache, log: log}
}

// Load returns the content set, serving from cache when warm.
func (r *Repository) Load() (*ContentSet, error) {
	if set := r.cache.get(); set != nil {
		return set, nil
	}
	return r.Reload()
}

// Reload bypasses the cache, reads content from source, validates it, and
// refreshes the cache.
func (r *Repository) Reload() (*ContentSet, error) {
	set, err := r.read()
	if err != nil {
		return nil, err
	}

	if err := engine.ValidateQuestionSet(set.Questions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentLoad, err)
	}
	if err := engine.ValidateRuleSet(set.Rules, set.Fragments); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentLoad, err)
	}

	r.cache.put(set)
	r.log.WithFields(logrus.Fields{
		"questions": len(set.Questions),
		"rules":     len(set.Rules),
		"fragments": len(set.Fragments),
	}).Debug("content set loaded")
	return set, nil
}

// LoadQuestions returns the questions in canonical display order.
func (r *Repository) LoadQuestions() ([]engine.Question, error) {
	set, err := r.Load()
	if err != nil {
		return nil, err
	}
	return set.Questions, nil
}

// LoadRules returns the condition rules in declaration order.
func (r *Repository) LoadRules() ([]engine.ConditionRule, error) {
	set, err := r.Load()
	if err != nil {
		return nil, err
	}
	return set.Rules, nil
}

// LoadFragments returns the content fragments.
func (r *Repository) LoadFragments() ([]engine.ContentFragment, error) {
	set, err := r.Load()
	if err != nil {
		return nil, err
	}
	return set.Fragments, nil
}

// read assembles a ContentSet from the directory or the embedded defaults.
func (r *Repository) read() (*ContentSet, error) {
	var qf questionsFile
	if err := r.readFile(QuestionsFile, &qf); err != nil {
		return nil, err
	}
	var rf rulesFile
	if err := r.readFile(RulesFile, &rf); err != nil {
		return nil, err
	}
	var ff fragmentsFile
	if err := r.readFile(FragmentsFile, &ff); err != nil {
		return nil, err
	}

	set := &ContentSet{}
	for _, q := range qf.Questions {
		question, err := q.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContentLoad, err)
		}
		set.Questions = append(set.Questions, question)
	}
	for _, rule := range rf.Rules {
		set.Rules = append(set.Rules, rule.toRule())
	}
	for _, f := range ff.Fragments {
		fragment, err := f.toFragment()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContentLoad, err)
		}
		set.Fragments = append(set.Fragments, fragment)
	}
	return set, nil
}

// readFile decodes one content file, preferring the override directory over
// the embedded defaults.
func (r *Repository) readFile(name string, out any) error {
	data, err := r.readBytes(name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrContentLoad, name, err)
	}
	return nil
}

func (r *Repository) readBytes(name string) ([]byte, error) {
	if r.dir != "" {
		path := filepath.Join(r.dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: read %s: %w", ErrContentLoad, path, err)
		}
		r.log.WithField("file", name).Debug("content file missing, using embedded default")
	}

	data, err := fs.ReadFile(defaultContent, "defaults/"+name)
	if err != nil {
		return nil, fmt.Errorf("%w: embedded %s: %w", ErrContentLoad, name, err)
	}
	return data, nil
}
