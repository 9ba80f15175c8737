package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/guidekit/guidekit/pkg/models"
)

// ConfigFile is the persisted configuration file name in the project root.
const ConfigFile = "guidekit.yaml"

// configFileWrapper keeps the YAML self-describing with a top-level key.
type configFileWrapper struct {
	Project models.ProjectConfiguration `yaml:"project"`
}

// Store reads and writes the project configuration in one directory.
type Store struct {
	dir string
	log *logrus.Logger
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Store{dir: filepath.Clean(dir), log: log}
}

// Path returns the absolute location of the configuration file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, ConfigFile)
}

// Exists reports whether a configuration file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// Load reads and validates guidekit.yaml. A missing file returns
// ErrConfigNotFound; a present but invalid file never yields a partial
// configuration.
func (s *Store) Load() (models.ProjectConfiguration, error) {
	var zero models.ProjectConfiguration

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return zero, fmt.Errorf("%w: %s", ErrConfigNotFound, s.Path())
		}
		return zero, fmt.Errorf("config: read %s: %w", s.Path(), err)
	}

	var wrapper configFileWrapper
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, ConfigFile, err)
	}

	if err := Validate(wrapper.Project); err != nil {
		return zero, err
	}

	s.log.WithField("path", s.Path()).Debug("configuration loaded")
	return wrapper.Project, nil
}

// Save validates and writes the configuration, creating the directory if
// needed. The file is written atomically via a temp file and rename.
func (s *Store) Save(cfg models.ProjectConfiguration) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("config: create directory %q: %w", s.dir, err)
	}

	data, err := yaml.Marshal(configFileWrapper{Project: cfg})
	if err != nil {
		return fmt.Errorf("config: encode configuration: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ConfigFile+".*")
	if err != nil {
		return fmt.Errorf("config: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("config: write %s: %w", ConfigFile, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("config: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("config: replace %s: %w", ConfigFile, err)
	}

	s.log.WithField("path", s.Path()).Info("configuration saved")
	return nil
}
