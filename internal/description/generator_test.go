package description

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Templates: map[string][]string{
			"Electronics": {"{ADJ} {BRAND} {NOUN} with {MODEL} chip"},
			"Office":      {"{JJ} {NN} for daily use"},
			"Broken":      {"{ZZ} widget"},
			"NoBrands":    {"plain {NOUN}"},
		},
		Adjectives: map[string][]string{"Electronics": {"wireless", "compact"}},
		Nouns: map[string][]string{
			"Electronics": {"router", "speaker"},
			"NoBrands":    {"desk"},
		},
		Verbs:         map[string][]string{"Electronics": {"connects"}},
		BrandNames:    map[string][]string{"Electronics": {"Voltix"}, "Office": {"Papyr"}},
		ModelPrefixes: []string{"X", "ZR-"},
		ModelSuffixes: []string{"", "-PRO"},
	}
}

func newTestGenerator(t *testing.T, seed uint64) *Generator {
	t.Helper()
	g, err := NewGenerator(testConfig(), DefaultLexicon(), rand.New(rand.NewPCG(seed, seed)))
	require.NoError(t, err)
	return g
}

var modelPattern = regexp.MustCompile(`^(X|ZR-)\d{3,4}(-PRO)?$`)

func TestDescription_NamedPlaceholders(t *testing.T) {
	g := newTestGenerator(t, 1)

	for i := 0; i < 50; i++ {
		text, err := g.Description("Electronics")
		require.NoError(t, err)

		words := strings.Fields(text)
		require.Len(t, words, 6)
		assert.Contains(t, []string{"wireless", "compact"}, words[0])
		assert.Equal(t, "Voltix", words[1])
		assert.Contains(t, []string{"router", "speaker"}, words[2])
		assert.Equal(t, "with", words[3])
		assert.Regexp(t, modelPattern, words[4])
		assert.Equal(t, "chip", words[5])
	}
}

func TestDescription_PartOfSpeechPlaceholders(t *testing.T) {
	g := newTestGenerator(t, 2)
	lex := DefaultLexicon()

	for i := 0; i < 50; i++ {
		text, err := g.Description("Office")
		require.NoError(t, err)

		words := strings.Fields(text)
		require.Len(t, words, 5)
		assert.Contains(t, lex.Words("JJ"), words[0])
		assert.Contains(t, lex.Words("NN"), words[1])
		assert.Equal(t, "for daily use", strings.Join(words[2:], " "))
	}
}

func TestDescription_Errors(t *testing.T) {
	g := newTestGenerator(t, 3)

	tests := []struct {
		name     string
		category string
		wantErr  error
	}{
		{name: "unknown category", category: "Furniture", wantErr: ErrUnknownCategory},
		{name: "tag missing from lexicon", category: "Broken", wantErr: ErrNoWordForTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Description(tt.category)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDescription_TemplateErrorCarriesPlaceholder(t *testing.T) {
	g := newTestGenerator(t, 4)

	_, err := g.Description("Broken")
	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Equal(t, "ZZ", tmplErr.Placeholder)
	assert.Equal(t, "Broken", tmplErr.Category)
}

func TestItemDescription(t *testing.T) {
	g := newTestGenerator(t, 5)

	item, err := g.ItemDescription("Electronics")
	require.NoError(t, err)
	assert.NotEmpty(t, item.Description)
	assert.Equal(t, "Voltix", item.Brand)
	assert.Regexp(t, modelPattern, item.Model)

	_, err = g.ItemDescription("NoBrands")
	assert.ErrorIs(t, err, ErrEmptyWordList)
}

func TestDescription_Deterministic(t *testing.T) {
	a := newTestGenerator(t, 42)
	b := newTestGenerator(t, 42)

	for i := 0; i < 20; i++ {
		ta, err := a.ItemDescription("Electronics")
		require.NoError(t, err)
		tb, err := b.ItemDescription("Electronics")
		require.NoError(t, err)
		assert.Equal(t, ta, tb)
	}
}

func TestNewGenerator_Validation(t *testing.T) {
	cfg := testConfig()
	cfg.ModelSuffixes = nil

	_, err := NewGenerator(cfg, DefaultLexicon(), rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewGenerator(testConfig(), nil, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestHasCategory(t *testing.T) {
	g := newTestGenerator(t, 6)
	assert.True(t, g.HasCategory("Electronics"))
	assert.False(t, g.HasCategory("Furniture"))
}
