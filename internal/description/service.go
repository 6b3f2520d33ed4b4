// Package description synthesizes human-readable item descriptions from
// category templates.
//
// Templates are whitespace-separated tokens. A token of the form {X} is a
// placeholder:
//   - {ADJ}, {NOUN}, {VERB}, {BRAND}: a random word from the category's list
//   - {MODEL}: a model number "<prefix><100-9999><suffix>"
//   - anything else: a part-of-speech tag (Penn Treebank, e.g. {NN}, {JJ},
//     {VBG}) resolved to a random lexicon word whose tag starts with it
//
// Every other token is copied verbatim.
package description

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Config is the description configuration file.
type Config struct {
	Templates     map[string][]string `yaml:"description_templates"`
	Adjectives    map[string][]string `yaml:"adjectives"`
	Nouns         map[string][]string `yaml:"nouns"`
	Verbs         map[string][]string `yaml:"verbs"`
	BrandNames    map[string][]string `yaml:"brand_names"`
	ModelPrefixes []string            `yaml:"model_prefixes"`
	ModelSuffixes []string            `yaml:"model_suffixes"`
	LexiconFile   string              `yaml:"lexicon_file"` // optional, relative to the config file
}

// LoadConfig reads the description configuration YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read description config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse description config: %w", err)
	}

	if cfg.LexiconFile != "" && !filepath.IsAbs(cfg.LexiconFile) {
		cfg.LexiconFile = filepath.Join(filepath.Dir(path), cfg.LexiconFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every category has templates and that model numbers can be built.
func (c *Config) Validate() error {
	if len(c.Templates) == 0 {
		return fmt.Errorf("%w: description_templates is empty", ErrInvalidConfig)
	}
	for category, templates := range c.Templates {
		if len(templates) == 0 {
			return fmt.Errorf("%w: no templates for category %q", ErrInvalidConfig, category)
		}
	}
	if len(c.ModelPrefixes) == 0 {
		return fmt.Errorf("%w: model_prefixes is empty", ErrInvalidConfig)
	}
	if len(c.ModelSuffixes) == 0 {
		return fmt.Errorf("%w: model_suffixes is empty", ErrInvalidConfig)
	}
	return nil
}

// Load reads the configuration at path and its lexicon (the embedded one
// unless lexicon_file is set) and returns a generator drawing from rng.
func Load(path string, rng *rand.Rand) (*Generator, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	lexicon := DefaultLexicon()
	if cfg.LexiconFile != "" {
		lexicon, err = LoadLexicon(cfg.LexiconFile)
		if err != nil {
			return nil, err
		}
	}

	return NewGenerator(cfg, lexicon, rng)
}
