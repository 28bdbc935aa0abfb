package dice

import (
	"slices"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
)

// Method selects how the six ability scores are generated
type Method string

const (
	// MethodRoll rolls 4d6 six times and drops the lowest die of each
	MethodRoll Method = "4d6"
	// MethodStandard returns the standard array
	MethodStandard Method = "standard"
	// MethodPointBuy returns the 27 point spread, which matches the standard array
	MethodPointBuy Method = "point_buy"
)

// AbilityCount is the number of ability scores
const AbilityCount = 6

// StandardArray is the fixed spread shared by the standard and point buy methods
var StandardArray = []int{15, 14, 13, 12, 10, 8}

// ParseMethod accepts the method names and their common aliases; empty means MethodRoll
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "4d6", "roll", "4d6_drop_lowest":
		return MethodRoll, nil
	case "standard", "standard_array", "array":
		return MethodStandard, nil
	case "point_buy", "pointbuy", "point_buy_27":
		return MethodPointBuy, nil
	}
	return "", dnderr.InvalidArgumentf("unknown ability score method '%s'", s).WithMeta("method", s)
}

// AbilityScores is a generated set of six scores
type AbilityScores struct {
	Method Method  `json:"method"`
	Scores []int   `json:"scores"`
	Rolls  [][]int `json:"rolls,omitempty"`
}

// RollDropLowest rolls 4d6 and sums the three highest dice
func RollDropLowest(r Roller) (int, []int, error) {
	res, err := r.Roll(4, 6, 0)
	if err != nil {
		return 0, nil, err
	}
	return res.RawTotal - res.Lowest(), res.Rolls, nil
}

// GenerateAbilityScores produces six scores with the given method. Rolled
// scores keep their roll order.
func GenerateAbilityScores(r Roller, method Method) (*AbilityScores, error) {
	switch method {
	case MethodStandard, MethodPointBuy:
		return &AbilityScores{Method: method, Scores: slices.Clone(StandardArray)}, nil
	case MethodRoll:
	default:
		return nil, dnderr.InvalidArgumentf("unknown ability score method '%s'", method)
	}

	if r == nil {
		r = NewRandomRoller()
	}
	out := &AbilityScores{
		Method: method,
		Scores: make([]int, 0, AbilityCount),
		Rolls:  make([][]int, 0, AbilityCount),
	}
	for i := 0; i < AbilityCount; i++ {
		score, rolls, err := RollDropLowest(r)
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to roll ability score")
		}
		out.Scores = append(out.Scores, score)
		out.Rolls = append(out.Rolls, rolls)
	}
	return out, nil
}
