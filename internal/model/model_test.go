package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultVoterRoll(t *testing.T) {
	roll := DefaultVoterRoll()

	require.Equal(t, 17, roll.Len())
	require.True(t, roll.Contains(101))
	require.True(t, roll.Contains(133))
	require.False(t, roll.Contains(102))
	require.False(t, roll.Contains(135))
	require.False(t, roll.Contains(99))
	require.Equal(t, "101, 103, 105, 107, 109, 111, 113, 115, 117, 119, 121, 123, 125, 127, 129, 131, 133", roll.String())
}

func TestNewVoterRollDropsDuplicates(t *testing.T) {
	roll := NewVoterRoll(105, 101, 103, 101)

	require.Equal(t, []int{101, 103, 105}, roll.Numbers())

	numbers := roll.Numbers()
	numbers[0] = 999
	require.False(t, roll.Contains(999))
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		key  string
		want Option
	}{
		{"struiken", OptionShrubs},
		{"gras", OptionGrass},
		{"onthouding", OptionAbstain},
		{"", OptionNone},
		{"Struiken", OptionNone},
		{"beton", OptionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.Equal(t, tt.want, ParseOption(tt.key))
		})
	}

	for _, opt := range Options() {
		require.Equal(t, opt, ParseOption(opt.Key()))
		require.NotEmpty(t, opt.Label())
		require.NotEmpty(t, opt.Emoji())
	}
}

func TestVoteJSON(t *testing.T) {
	v := Vote{ID: "x", HouseNumber: 101, Option: OptionGrass, Timestamp: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)}

	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.Contains(t, string(data), `"option":"gras"`)

	var back Vote
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, OptionGrass, back.Option)
}

func TestTallyWith(t *testing.T) {
	var empty Tally
	require.Zero(t, empty.Total())
	require.Empty(t, empty.Participants())

	first := empty.With(Vote{HouseNumber: 103, Option: OptionShrubs})
	second := first.With(Vote{HouseNumber: 101, Option: OptionShrubs})
	third := second.With(Vote{HouseNumber: 105, Option: OptionAbstain})

	require.Zero(t, empty.Total())
	require.Equal(t, 1, first.Total())
	require.Equal(t, 2, second.Total())
	require.Equal(t, 3, third.Total())

	shrubs := third.Votes(OptionShrubs)
	require.Len(t, shrubs, 2)
	require.Equal(t, 103, shrubs[0].HouseNumber)
	require.Equal(t, 101, shrubs[1].HouseNumber)

	require.Equal(t, 1, first.Count(OptionShrubs))
	require.Equal(t, 0, third.Count(OptionGrass))
	require.True(t, third.HasVoted(105))
	require.False(t, second.HasVoted(105))
	require.Equal(t, []int{101, 103, 105}, third.Participants())
}

func TestTallyBranchesDoNotShareAppends(t *testing.T) {
	base := Tally{}.With(Vote{HouseNumber: 101, Option: OptionGrass})

	left := base.With(Vote{HouseNumber: 103, Option: OptionGrass})
	right := base.With(Vote{HouseNumber: 105, Option: OptionGrass})

	require.Equal(t, 103, left.Votes(OptionGrass)[1].HouseNumber)
	require.Equal(t, 105, right.Votes(OptionGrass)[1].HouseNumber)
	require.Equal(t, 1, base.Count(OptionGrass))
}
