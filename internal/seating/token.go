package seating

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// digits matches every run of ASCII decimal digits inside a token.
var digits = regexp.MustCompile(`\d+`)

// Seat is a zero-based grid coordinate.
type Seat struct {
	Row    int
	Column int
}

// Label renders the seat in the 1-based R<row>C<col> token form.
func (s Seat) Label() string {
	return fmt.Sprintf("R%dC%d", s.Row+1, s.Column+1)
}

// ParseToken converts a token such as "R2C9" into the zero-based seat
// (1, 8). Only the count of numeric groups is checked; the letters around
// them are not validated.
func ParseToken(token string) (Seat, error) {
	groups := digits.FindAllString(token, -1)
	if len(groups) != 2 {
		return Seat{}, fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}
	// Both groups are all digits, so Atoi can only fail on overflow.
	row, err := strconv.Atoi(groups[0])
	if err != nil {
		return Seat{}, fmt.Errorf("%w: %q", ErrOutOfRange, token)
	}
	col, err := strconv.Atoi(groups[1])
	if err != nil {
		return Seat{}, fmt.Errorf("%w: %q", ErrOutOfRange, token)
	}
	return Seat{Row: row - 1, Column: col - 1}, nil
}

// splitTokens breaks a reservation line on single spaces. Empty fields
// (from repeated spaces) are kept so they fail as malformed tokens.
func splitTokens(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}
