package model

import "sort"

// Tally maps every option to its votes in arrival order.
// The zero value is an empty tally. A Tally is never modified after
// creation, With returns a new one.
type Tally struct {
	votes map[Option][]Vote
}

// With returns a new tally with the vote appended to its option
func (t Tally) With(vote Vote) Tally {
	next := make(map[Option][]Vote, len(t.votes)+1)
	for opt, votes := range t.votes {
		next[opt] = votes
	}

	prev := t.votes[vote.Option]
	seq := make([]Vote, len(prev), len(prev)+1)
	copy(seq, prev)
	next[vote.Option] = append(seq, vote)

	return Tally{votes: next}
}

// Votes returns a copy of the votes cast for the option
func (t Tally) Votes(opt Option) []Vote {
	votes := t.votes[opt]
	out := make([]Vote, len(votes))
	copy(out, votes)
	return out
}

// Count returns the number of votes cast for the option
func (t Tally) Count(opt Option) int {
	return len(t.votes[opt])
}

// Total returns the number of votes across all options
func (t Tally) Total() int {
	total := 0
	for _, votes := range t.votes {
		total += len(votes)
	}
	return total
}

// HasVoted reports whether the house number appears in any option
func (t Tally) HasVoted(houseNumber int) bool {
	for _, votes := range t.votes {
		for _, v := range votes {
			if v.HouseNumber == houseNumber {
				return true
			}
		}
	}
	return false
}

// Participants returns the house numbers that voted, ascending
func (t Tally) Participants() []int {
	numbers := make([]int, 0, t.Total())
	for _, votes := range t.votes {
		for _, v := range votes {
			numbers = append(numbers, v.HouseNumber)
		}
	}
	sort.Ints(numbers)
	return numbers
}
