package console

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		input   string
		def     bool
		want    bool
		wantErr bool
	}{
		{input: "y", want: true},
		{input: "YES", want: true},
		{input: " oui ", want: true},
		{input: "o", want: true},
		{input: "n", def: true, want: false},
		{input: "No", def: true, want: false},
		{input: "non", def: true, want: false},
		{input: "", def: true, want: true},
		{input: "  ", def: false, want: false},
		{input: "maybe", wantErr: true},
		{input: "yes please", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseYesNo(tt.input, tt.def)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ports.ErrUnrecognizedAnswer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{input: "", want: 0},
		{input: "   ", want: 0},
		{input: "3", want: 3},
		{input: "-5", want: -5},
		{input: "+2", want: 2},
		{input: "2.5", want: 2.5},
		{input: "-1,5", want: -1.5},
		{input: "42", want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRating(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRating_Invalid(t *testing.T) {
	for _, input := range []string{"abc", "3 stars", "NaN", "inf", "1,2,3"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRating(input)

			var formatErr *domain.RatingFormatError
			require.True(t, errors.As(err, &formatErr), "got %v", err)
			assert.Equal(t, input, formatErr.Input)
		})
	}

	_, err := ParseRating("abc")
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}
