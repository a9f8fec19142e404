// Package console implements the interactive terminal prompts of the
// questionnaire.
package console

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// Accepted yes/no tokens, compared after trimming and lower-casing.
// French tokens are accepted alongside English ones.
var (
	yesTokens = map[string]bool{"y": true, "yes": true, "o": true, "oui": true}
	noTokens  = map[string]bool{"n": true, "no": true, "non": true}
)

var errNotFinite = errors.New("not a finite number")

// ParseYesNo interprets a yes/no answer.
//
//	yes: y, yes, o, oui
//	no:  n, no, non
//
// Empty input returns def. Any other input returns an error wrapping
// ports.ErrUnrecognizedAnswer so the caller can ask again.
func ParseYesNo(input string, def bool) (bool, error) {
	tok := strings.ToLower(strings.TrimSpace(input))
	switch {
	case tok == "":
		return def, nil
	case yesTokens[tok]:
		return true, nil
	case noTokens[tok]:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ports.ErrUnrecognizedAnswer, input)
	}
}

// ParseRating interprets a rating line. Empty input is a neutral 0.
// A decimal comma is accepted ("2,5"). The value is not clamped here.
// Input that is not a finite number yields a *domain.RatingFormatError.
func ParseRating(input string) (float64, error) {
	tok := strings.TrimSpace(input)
	if tok == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(strings.Replace(tok, ",", ".", 1), 64)
	if err != nil {
		return 0, &domain.RatingFormatError{Input: input, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.RatingFormatError{Input: input, Err: errNotFinite}
	}
	return v, nil
}
