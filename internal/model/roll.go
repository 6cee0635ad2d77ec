package model

import (
	"sort"
	"strconv"
	"strings"
)

// VoterRoll is the fixed set of house numbers allowed to vote
type VoterRoll struct {
	numbers []int
	members map[int]struct{}
}

// NewVoterRoll creates a roll from the given numbers, duplicates are dropped
func NewVoterRoll(numbers ...int) VoterRoll {
	members := make(map[int]struct{}, len(numbers))
	sorted := make([]int, 0, len(numbers))
	for _, n := range numbers {
		if _, ok := members[n]; ok {
			continue
		}
		members[n] = struct{}{}
		sorted = append(sorted, n)
	}
	sort.Ints(sorted)

	return VoterRoll{numbers: sorted, members: members}
}

// DefaultVoterRoll returns the odd house numbers 101 to 133
func DefaultVoterRoll() VoterRoll {
	numbers := make([]int, 0, 17)
	for n := 101; n <= 133; n += 2 {
		numbers = append(numbers, n)
	}
	return NewVoterRoll(numbers...)
}

// Contains reports whether the house number is on the roll
func (r VoterRoll) Contains(houseNumber int) bool {
	_, ok := r.members[houseNumber]
	return ok
}

// Numbers returns the house numbers in ascending order
func (r VoterRoll) Numbers() []int {
	out := make([]int, len(r.numbers))
	copy(out, r.numbers)
	return out
}

// Len returns the size of the roll
func (r VoterRoll) Len() int {
	return len(r.numbers)
}

func (r VoterRoll) String() string {
	return JoinNumbers(r.numbers)
}

// JoinNumbers renders house numbers as a comma separated list
func JoinNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
