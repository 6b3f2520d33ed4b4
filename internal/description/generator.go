package description

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"apgen/pkg/services"
)

// Generator fills description templates. It is not safe for concurrent use
// because it shares the caller's random source.
type Generator struct {
	cfg     *Config
	lexicon *Lexicon
	rng     *rand.Rand
}

var _ services.DescriptionService = (*Generator)(nil)

// NewGenerator creates a generator over a validated config and a lexicon.
func NewGenerator(cfg *Config, lexicon *Lexicon, rng *rand.Rand) (*Generator, error) {
	if cfg == nil || lexicon == nil || rng == nil {
		return nil, fmt.Errorf("%w: config, lexicon and random source are required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, lexicon: lexicon, rng: rng}, nil
}

// HasCategory reports whether templates exist for category.
func (g *Generator) HasCategory(category string) bool {
	return len(g.cfg.Templates[category]) > 0
}

// Description picks a random template of the category and fills it.
func (g *Generator) Description(category string) (string, error) {
	templates := g.cfg.Templates[category]
	if len(templates) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	template := templates[g.rng.IntN(len(templates))]
	return g.fill(template, category)
}

// ItemDescription returns a description plus an independently drawn brand and model number.
func (g *Generator) ItemDescription(category string) (*services.ItemDescription, error) {
	text, err := g.Description(category)
	if err != nil {
		return nil, err
	}
	brand, err := g.pick(g.cfg.BrandNames, category, "BRAND")
	if err != nil {
		return nil, err
	}
	return &services.ItemDescription{
		Description: text,
		Brand:       brand,
		Model:       g.ModelNumber(),
	}, nil
}

// ModelNumber builds "<prefix><number><suffix>" with a 3-4 digit number.
func (g *Generator) ModelNumber() string {
	prefix := g.cfg.ModelPrefixes[g.rng.IntN(len(g.cfg.ModelPrefixes))]
	suffix := g.cfg.ModelSuffixes[g.rng.IntN(len(g.cfg.ModelSuffixes))]
	number := 100 + g.rng.IntN(9900)
	return prefix + strconv.Itoa(number) + suffix
}

func (g *Generator) fill(template, category string) (string, error) {
	tokens := strings.Fields(template)
	filled := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if len(token) < 2 || !strings.HasPrefix(token, "{") || !strings.HasSuffix(token, "}") {
			filled = append(filled, token)
			continue
		}

		placeholder := token[1 : len(token)-1]
		word, err := g.resolve(placeholder, category)
		if err != nil {
			return "", &TemplateError{Category: category, Template: template, Placeholder: placeholder, Err: err}
		}
		filled = append(filled, word)
	}

	return strings.Join(filled, " "), nil
}

func (g *Generator) resolve(placeholder, category string) (string, error) {
	switch placeholder {
	case "ADJ":
		return g.pick(g.cfg.Adjectives, category, placeholder)
	case "NOUN":
		return g.pick(g.cfg.Nouns, category, placeholder)
	case "VERB":
		return g.pick(g.cfg.Verbs, category, placeholder)
	case "BRAND":
		return g.pick(g.cfg.BrandNames, category, placeholder)
	case "MODEL":
		return g.ModelNumber(), nil
	default:
		return g.wordForTag(placeholder)
	}
}

func (g *Generator) pick(lists map[string][]string, category, placeholder string) (string, error) {
	words := lists[category]
	if len(words) == 0 {
		return "", fmt.Errorf("%w: %s words for category %q", ErrEmptyWordList, placeholder, category)
	}
	return words[g.rng.IntN(len(words))], nil
}

func (g *Generator) wordForTag(tag string) (string, error) {
	words := g.lexicon.Words(tag)
	if len(words) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoWordForTag, tag)
	}
	return words[g.rng.IntN(len(words))], nil
}
