package geolens

// MaxScore is the starting score of each axis before deductions.
const MaxScore = 100

// AxisScore carries one axis's score and the ordered results behind it.
// Results appear in rule evaluation order.
type AxisScore struct {
	Axis    Axis         `json:"axis"`
	Score   int          `json:"score"`
	Results []RuleResult `json:"results"`
}

// Failed returns the failing results in evaluation order.
func (s AxisScore) Failed() []RuleResult {
	var failed []RuleResult
	for _, r := range s.Results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// NewAxisScore aggregates rule results into an axis score. The score
// starts at MaxScore and each failed rule subtracts its fixed weight,
// clamped at zero. Deductions are strictly additive: every missing point
// is attributable to exactly one failed result, and weights never combine
// multiplicatively.
func NewAxisScore(axis Axis, rules []Rule, results []RuleResult) AxisScore {
	weights := make(map[string]int, len(rules))
	for _, r := range rules {
		weights[r.ID] = r.Weight
	}

	score := MaxScore
	for _, res := range results {
		if !res.Passed {
			score -= weights[res.RuleID]
		}
	}
	if score < 0 {
		score = 0
	}

	return AxisScore{Axis: axis, Score: score, Results: results}
}

// Grade maps a score to a letter grade for display. Grades are
// presentation only and never feed back into scoring.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

// ApplyWeights returns a copy of rules with weight overrides applied by
// rule id. Unknown ids are ignored. Overrides are configuration data,
// applied once at wiring time before any evaluation; the report reflects
// whatever weights the batteries ran with.
func ApplyWeights(rules []Rule, overrides map[string]int) []Rule {
	if len(overrides) == 0 {
		return rules
	}

	out := make([]Rule, len(rules))
	copy(out, rules)
	for i := range out {
		if w, ok := overrides[out[i].ID]; ok {
			out[i].Weight = w
		}
	}
	return out
}
