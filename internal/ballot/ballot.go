package ballot

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hard-gainer/buurtstemming/internal/model"
)

// Accepted is a ballot that passed validation
type Accepted struct {
	HouseNumber int
	Option      model.Option
}

// Vote builds the vote for an accepted ballot
func (a Accepted) Vote(at time.Time) model.Vote {
	return model.Vote{
		ID:          uuid.New().String(),
		HouseNumber: a.HouseNumber,
		Option:      a.Option,
		Timestamp:   at,
	}
}

// Validate checks a ballot against the roll and the current tally.
// It has no side effects.
func Validate(roll model.VoterRoll, houseNumber string, option model.Option, tally model.Tally) (Accepted, error) {
	houseNumber = strings.TrimSpace(houseNumber)
	if houseNumber == "" {
		return Accepted{}, ErrMissingHouseNumber
	}

	n, ok := leadingInt(houseNumber)
	if !ok || !roll.Contains(n) {
		return Accepted{}, ErrIneligibleHouseNumber
	}

	if tally.HasVoted(n) {
		return Accepted{}, ErrDuplicateVote
	}

	if option == model.OptionNone {
		return Accepted{}, ErrMissingOption
	}

	return Accepted{HouseNumber: n, Option: option}, nil
}

// leadingInt reads the optionally signed integer at the start of s and ignores
// the rest, so "101.0" and "101abc" both read as 101
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// RecordVote returns a new tally with the vote appended.
// The vote must have passed Validate, uniqueness is not checked again.
func RecordVote(tally model.Tally, vote model.Vote) model.Tally {
	return tally.With(vote)
}
