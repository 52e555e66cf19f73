// Package generator produces synthetic company names and noisy variants of
// them for demos and tests. It is fully seedable and lives outside the match
// engine, which stays deterministic.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
)

// phoneticVariations maps canonical business-name tokens to plausible noisy
// variants observed in real-world inputs: misspellings, pronunciation-driven
// spellings, and data-capture errors.
var phoneticVariations = map[string][]string{
	"services":    {"sirvices", "servies", "sarvices"},
	"solutions":   {"solutons", "soltions"},
	"industries":  {"industres", "industris", "industrys"},
	"consulting":  {"consalting", "consultng", "consltng"},
	"global":      {"globel", "globaly"},
	"tech":        {"teck", "tek", "techn"},
	"technology":  {"technolgy", "tecnology", "technlogy"},
	"company":     {"compny", "compani"},
	"limited":     {"limtied", "limeted", "limitid"},
	"software":    {"softwere", "softwar"},
	"systems":     {"systms", "sistem"},
	"corporation": {"corpration", "corporatn", "corporaton"},
}

// variationKeys holds the map keys in a fixed order so that a seeded
// Generator replays the exact same substitutions.
var variationKeys = []string{
	"services", "solutions", "industries", "consulting", "global", "tech",
	"technology", "company", "limited", "software", "systems", "corporation",
}

var surnames = []string{
	"Anderson", "Blake", "Carter", "Dawson", "Ellis", "Foster", "Grant",
	"Hayes", "Ingram", "Jensen", "Keller", "Lowell", "Mercer", "Norton",
	"Osborne", "Porter", "Quinn", "Ramsey", "Sutton", "Thornton", "Vaughn",
	"Walsh",
}

var namePatterns = []string{
	"%s Ltd",
	"%s Inc",
	"%s Group",
	"%s and Sons",
	"%s-%s",
	"%s, %s and %s",
	"%s Consulting",
	"%s Software Systems",
	"%s Technology Services",
	"Global %s Industries",
	"%s Solutions Limited",
}

// Generator builds synthetic names from a private random source.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator seeded for reproducible output.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// RealisticNames generates n plausible company names.
func (g *Generator) RealisticNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = g.companyName()
	}
	return names
}

func (g *Generator) companyName() string {
	pattern := namePatterns[g.rng.Intn(len(namePatterns))]
	parts := make([]any, strings.Count(pattern, "%s"))
	for i := range parts {
		parts[i] = surnames[g.rng.Intn(len(surnames))]
	}
	return fmt.Sprintf(pattern, parts...)
}

// DirtyName produces a noisy variant of a company name, simulating the input
// noise the match engine sees in practice: phonetic token substitutions,
// vowel loss from shorthand or OCR, adjacent-character transpositions, and
// dropped punctuation.
func (g *Generator) DirtyName(name string) string {
	n := strings.ToLower(name)

	// Substitute known tokens with a noisy variant about half the time.
	for _, word := range variationKeys {
		if strings.Contains(n, word) && g.rng.Float64() < 0.5 {
			variants := phoneticVariations[word]
			n = strings.ReplaceAll(n, word, variants[g.rng.Intn(len(variants))])
		}
	}

	// Occasionally strip vowels, keeping the consonant skeleton.
	if g.rng.Float64() < 0.2 {
		var b strings.Builder
		for _, ch := range n {
			if !strings.ContainsRune("aeiou", ch) {
				b.WriteRune(ch)
			}
		}
		n = b.String()
	}

	// Simulate a typing transposition on sufficiently long strings.
	if g.rng.Float64() < 0.2 && len(n) > 4 {
		i := g.rng.Intn(len(n) - 1)
		chars := []byte(n)
		chars[i], chars[i+1] = chars[i+1], chars[i]
		n = string(chars)
	}

	n = strings.ReplaceAll(n, "&", "")
	n = strings.ReplaceAll(n, ".", "")

	return capitalize(n)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
