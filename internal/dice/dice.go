package dice

import (
	"math/rand/v2"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
)

// RollResult holds the individual dice of a roll
type RollResult struct {
	Count    int   `json:"count"`
	Sides    int   `json:"sides"`
	Bonus    int   `json:"bonus"`
	Rolls    []int `json:"rolls"`
	RawTotal int   `json:"raw_total"`
	Total    int   `json:"total"`
}

// Lowest returns the smallest die, or 0 for an empty roll
func (r *RollResult) Lowest() int {
	if len(r.Rolls) == 0 {
		return 0
	}
	lowest := r.Rolls[0]
	for _, v := range r.Rolls[1:] {
		lowest = min(lowest, v)
	}
	return lowest
}

func validate(count, sides int) error {
	if count < 1 {
		return dnderr.InvalidArgumentf("invalid dice count %d", count)
	}
	if sides < 1 {
		return dnderr.InvalidArgumentf("invalid dice size %d", sides)
	}
	return nil
}

func newResult(count, sides, bonus int, rolls []int) *RollResult {
	raw := 0
	for _, v := range rolls {
		raw += v
	}
	return &RollResult{
		Count:    count,
		Sides:    sides,
		Bonus:    bonus,
		Rolls:    rolls,
		RawTotal: raw,
		Total:    raw + bonus,
	}
}

// Roll rolls count dice of the given size with the package random source
func Roll(count, sides, bonus int) (*RollResult, error) {
	if err := validate(count, sides); err != nil {
		return nil, err
	}

	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = rand.IntN(sides) + 1
	}
	return newResult(count, sides, bonus, rolls), nil
}
