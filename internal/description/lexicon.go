package description

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/lexicon.tsv
var defaultLexicon string

// Lexicon indexes words by every prefix of their part-of-speech tag, so a
// lookup for "NN" returns NN, NNS and NNP words alike.
type Lexicon struct {
	byTagPrefix map[string][]string
	size        int
}

// DefaultLexicon returns the lexicon embedded in the binary.
func DefaultLexicon() *Lexicon {
	lex, err := ParseLexicon(strings.NewReader(defaultLexicon))
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lex
}

// LoadLexicon reads a lexicon file.
func LoadLexicon(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer f.Close()
	return ParseLexicon(f)
}

// ParseLexicon reads "word<TAB>TAG" lines. Blank lines and lines starting
// with '#' are ignored.
func ParseLexicon(r io.Reader) (*Lexicon, error) {
	lex := &Lexicon{byTagPrefix: make(map[string][]string)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("lexicon line %d: expected \"word TAG\", got %q", lineNum, line)
		}
		lex.add(fields[0], fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	if lex.size == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}
	return lex, nil
}

func (l *Lexicon) add(word, tag string) {
	for i := 1; i <= len(tag); i++ {
		prefix := tag[:i]
		l.byTagPrefix[prefix] = append(l.byTagPrefix[prefix], word)
	}
	l.size++
}

// Words returns the words whose tag starts with tag, in file order.
func (l *Lexicon) Words(tag string) []string {
	return l.byTagPrefix[tag]
}

// Size returns the number of entries in the lexicon.
func (l *Lexicon) Size() int {
	return l.size
}
