package application

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/ahrav/go-ballot/internal/domain"
)

const (
	// SelectionSeparator splits nickname tokens in a selection string.
	SelectionSeparator = "-"

	// selectAllToken selects every candidate, like an empty string, unless a
	// candidate is actually nicknamed "all".
	selectAllToken = "all"

	// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
	maxSuggestionDistance = 2
)

// foldCaser is a package-level Unicode case folder used to compare
// nicknames case-insensitively.
var foldCaser = cases.Fold()

// Selection is the outcome of parsing a selection string against a set of
// loaded candidates.
type Selection struct {
	// Nicknames lists the selected nicknames in candidate load order.
	Nicknames []string

	// Unknown lists the tokens that matched no candidate, in input order.
	Unknown []string
}

// ParseSelection parses a case-insensitive, dash-delimited list of
// nicknames. An empty string selects every candidate.
//
// The selection is valid only if every token names a loaded candidate;
// there is no partial acceptance. On an invalid selection the returned
// Selection carries the offending tokens in Unknown and no nicknames.
func ParseSelection(raw string, set *domain.CandidateSet) (Selection, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Selection{Nicknames: set.Nicknames()}, true
	}

	byFolded := make(map[string]string, set.Len())
	for _, nick := range set.Nicknames() {
		byFolded[foldCaser.String(nick)] = nick
	}

	tokens := tokenize(trimmed)
	if len(tokens) == 1 && tokens[0] == selectAllToken {
		if _, ok := byFolded[selectAllToken]; !ok {
			return Selection{Nicknames: set.Nicknames()}, true
		}
	}

	chosen := make(map[string]bool, len(tokens))
	var unknown []string
	for _, tok := range tokens {
		nick, ok := byFolded[tok]
		if !ok {
			unknown = append(unknown, tok)
			continue
		}
		chosen[nick] = true
	}

	if len(unknown) > 0 || len(chosen) == 0 {
		return Selection{Unknown: unknown}, false
	}

	sel := Selection{Nicknames: make([]string, 0, len(chosen))}
	for _, nick := range set.Nicknames() {
		if chosen[nick] {
			sel.Nicknames = append(sel.Nicknames, nick)
		}
	}
	return sel, true
}

// tokenize folds the input and splits it on SelectionSeparator, dropping
// empty tokens.
func tokenize(raw string) []string {
	parts := strings.Split(foldCaser.String(raw), SelectionSeparator)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Candidates resolves the selected nicknames to candidates, in load order.
func (s Selection) Candidates(set *domain.CandidateSet) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(s.Nicknames))
	for _, nick := range s.Nicknames {
		if c, ok := set.ByNickname(nick); ok {
			out = append(out, c)
		}
	}
	return out
}

// SuggestNickname returns the known nickname closest to token by
// Levenshtein distance, if one is close enough to be a plausible typo.
func SuggestNickname(token string, nicknames []string) (string, bool) {
	token = foldCaser.String(token)
	best, bestDist := "", -1
	for _, nick := range nicknames {
		d := levenshtein.ComputeDistance(token, foldCaser.String(nick))
		if bestDist < 0 || d < bestDist {
			best, bestDist = nick, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestionDistance {
		return "", false
	}
	// A one-letter token is "close" to every short nickname; require the
	// distance to stay below the token length.
	if bestDist >= utf8.RuneCountInString(token) {
		return "", false
	}
	return best, true
}
