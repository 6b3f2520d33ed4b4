package description_test

import (
	"fmt"
	"math/rand/v2"

	"apgen/internal/description"
)

// Example shows filling a template that mixes named and part-of-speech placeholders.
func Example() {
	cfg := &description.Config{
		Templates: map[string][]string{
			"Office Supplies": {"{ADJ} {BRAND} stapler"},
		},
		Adjectives:    map[string][]string{"Office Supplies": {"heavy-duty"}},
		BrandNames:    map[string][]string{"Office Supplies": {"Clipco"}},
		ModelPrefixes: []string{"ST"},
		ModelSuffixes: []string{""},
	}

	gen, err := description.NewGenerator(cfg, description.DefaultLexicon(), rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		fmt.Println(err)
		return
	}

	text, err := gen.Description("Office Supplies")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(text)
	// Output: heavy-duty Clipco stapler
}
