// Package scoring implements the similarity signals, the score combiner, and
// the decision policy of the company match engine. Everything in this package
// is pure and stateless: the same inputs always produce the same outputs, and
// all functions are safe for concurrent use.
package scoring

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"

	"github.com/dcoelho/company-match/model"
)

// normalize case-folds and trims a name before comparison.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StringSimilarity returns a normalized edit-distance ratio between the two
// names in [0,1]. Names are case-folded and trimmed first; identical strings
// yield 1 and an empty string yields 0.
func StringSimilarity(query, name string) float64 {
	a, b := normalize(query), normalize(name)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	distance := levenshtein.ComputeDistance(a, b)
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	return clamp01(1 - float64(distance)/float64(longest))
}

// PhoneticSimilarity compares sound-based encodings of the two names and
// returns 1 when the encodings are identical, 0 when both encodings are
// non-empty and differ, and 0 when either encoding is empty.
//
// Names are encoded token by token. Two names count as phonetically identical
// when their Soundex signatures match, or when their Double Metaphone primary
// signatures match. Soundex catches transposition typos that preserve the
// consonant skeleton ("Acem" / "Acme"); Double Metaphone catches
// pronunciation-preserving respellings that Soundex's letter groups miss.
func PhoneticSimilarity(query, name string) float64 {
	qs, qm := phoneticSignatures(query)
	ns, nm := phoneticSignatures(name)
	if qs == "" || ns == "" {
		return 0
	}
	if qs == ns {
		return 1
	}
	if qm != "" && qm == nm {
		return 1
	}
	return 0
}

// phoneticSignatures builds the per-token Soundex and Double Metaphone
// primary signatures for a name. Tokens that produce no code are skipped.
func phoneticSignatures(s string) (soundex, metaphone string) {
	var sx, mp []string
	for _, token := range strings.Fields(normalize(s)) {
		if code := matchr.Soundex(token); code != "" {
			sx = append(sx, code)
		}
		if primary, _ := matchr.DoubleMetaphone(token); primary != "" {
			mp = append(mp, primary)
		}
	}
	return strings.Join(sx, " "), strings.Join(mp, " ")
}

// ScoreDominance measures how much more confident the backend is in the top
// candidate versus the runner-up, normalized to [0,1]. A top candidate with
// no runner-up dominates fully; a zero top score dominates not at all.
func ScoreDominance(top float64, runnerUp float64, hasRunnerUp bool) float64 {
	if !hasRunnerUp {
		return 1
	}
	if top <= 0 {
		return 0
	}
	return clamp01((top - runnerUp) / top)
}

// Signals computes the full signal set for a query against a ranked candidate
// list. Position 0 is the top candidate and position 1, when present, the
// runner-up. An empty candidate list yields the zero SignalSet.
func Signals(query string, candidates []model.Candidate) model.SignalSet {
	if len(candidates) == 0 {
		return model.SignalSet{}
	}

	top := candidates[0]
	var runnerUpScore float64
	hasRunnerUp := len(candidates) > 1
	if hasRunnerUp {
		runnerUpScore = candidates[1].BackendScore
	}

	return model.SignalSet{
		StringSimilarity:   StringSimilarity(query, top.CanonicalName),
		PhoneticSimilarity: PhoneticSimilarity(query, top.CanonicalName),
		ScoreDominance:     ScoreDominance(top.BackendScore, runnerUpScore, hasRunnerUp),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
