package geolens

import "fmt"

// Axis identifies which score a rule contributes to.
type Axis string

// Analysis axes. SEO covers mechanical search hygiene; GEO covers
// AI readability and misinterpretation risk.
const (
	AxisSEO Axis = "seo"
	AxisGEO Axis = "geo"
)

// Rule is a single, independently testable check evaluated against a
// Content. Rules are stateless and side-effect-free; no rule may depend
// on another rule's result.
type Rule struct {
	// ID uniquely identifies the rule. IDs are stable across versions
	// and are used for report diffing.
	ID string

	// Axis is the score the rule contributes to.
	Axis Axis

	// Weight is the fixed number of points deducted when the rule
	// fails. Weights are never computed at runtime.
	Weight int

	// Doc is a one-line description shown by the rules listing.
	Doc string

	// Evaluate judges the content. It must be pure: no I/O, no shared
	// state, no clock access.
	Evaluate func(c *Content) RuleResult
}

// RuleResult is the outcome of evaluating one rule.
type RuleResult struct {
	// RuleID cites the rule that produced the result.
	RuleID string `json:"ruleId"`

	// Passed reports whether the check succeeded.
	Passed bool `json:"passed"`

	// Message explains the outcome. It is present on pass as well as
	// fail so every score line is auditable.
	Message string `json:"message"`

	// Evidence is an optional excerpt or locator into the content,
	// such as an offending sentence or heading.
	Evidence string `json:"evidence,omitempty"`
}

// Pass returns a passing result with a formatted message.
func Pass(format string, args ...any) RuleResult {
	return RuleResult{Passed: true, Message: fmt.Sprintf(format, args...)}
}

// Fail returns a failing result with a formatted message.
func Fail(format string, args ...any) RuleResult {
	return RuleResult{Passed: false, Message: fmt.Sprintf(format, args...)}
}

// FailWith returns a failing result carrying evidence.
func FailWith(evidence string, format string, args ...any) RuleResult {
	return RuleResult{
		Passed:   false,
		Message:  fmt.Sprintf(format, args...),
		Evidence: evidence,
	}
}

// InsufficientData returns the failing result a rule uses when the content
// is missing data the rule needs. The message always carries the
// "insufficient data" marker so these failures are distinguishable from
// genuine check failures.
func InsufficientData(format string, args ...any) RuleResult {
	return RuleResult{
		Passed:  false,
		Message: "insufficient data: " + fmt.Sprintf(format, args...),
	}
}

// EvaluateRules runs every rule against the content in declared order and
// returns exactly one result per rule. Results carry the id of the rule
// that produced them regardless of what Evaluate set. A panicking rule is
// reported as a failed result citing the rule id and never aborts the
// battery.
func EvaluateRules(rules []Rule, c *Content) []RuleResult {
	results := make([]RuleResult, len(rules))
	for i, rule := range rules {
		results[i] = evaluateRule(rule, c)
	}
	return results
}

func evaluateRule(rule Rule, c *Content) (result RuleResult) {
	defer func() {
		if r := recover(); r != nil {
			result = RuleResult{
				RuleID:  rule.ID,
				Passed:  false,
				Message: fmt.Sprintf("rule %s failed to evaluate: %v", rule.ID, r),
			}
		}
	}()

	result = rule.Evaluate(c)
	result.RuleID = rule.ID
	return result
}
