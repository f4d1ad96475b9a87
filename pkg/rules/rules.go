package rules

import (
	"github.com/loaderkit/ruletree/pkg/errors"
)

// Phase controls when a rule's processors run relative to others
type Phase string

// Phase values. An empty phase on a rule reads as PhaseNormal.
const (
	PhaseNormal Phase = "normal"
	PhasePre    Phase = "pre"
	PhasePost   Phase = "post"
)

// Valid reports whether p names a known phase
func (p Phase) Valid() bool {
	switch p {
	case "", PhaseNormal, PhasePre, PhasePost:
		return true
	}
	return false
}

// orNormal resolves the empty phase to PhaseNormal
func (p Phase) orNormal() Phase {
	if p == "" {
		return PhaseNormal
	}
	return p
}

// ResourceSpec describes which resources a rule applies to. The rules
// package itself never interprets these fields; they are consumed by the
// normalizer, which compiles them into the predicate carried by the
// corresponding NormalizedRule.
type ResourceSpec struct {
	// Test is a glob pattern matched against the resource's base name
	Test string

	// PathPattern is a glob pattern matched against the full resource path.
	// A leading "**/" matches any number of parent directories.
	PathPattern string

	// Extensions lists file extensions (with or without the leading dot)
	// this rule accepts
	Extensions []string

	// Include restricts matches to paths under any of these prefixes
	Include []string

	// Exclude rejects paths under any of these prefixes; exclusion wins
	// over every other constraint
	Exclude []string
}

// Rule is a node in a rule tree. Rules are always handled by pointer: a
// rule's identity is its pointer, and structurally identical siblings are
// distinct nodes.
type Rule struct {
	// Phase orders this rule's processors relative to others; empty means
	// normal
	Phase Phase

	// Processor is a single processor reference
	Processor string

	// Processors is an ordered list of processor references
	Processors []string

	// Resource is the resource-test specification consumed by the
	// normalizer
	Resource *ResourceSpec

	// Sequence holds ordered children; all matching children apply
	Sequence []*Rule

	// OneOf holds a first-match set; only the first matching child applies
	OneOf []*Rule
}

// IsLeaf reports whether the rule has no children
func (r *Rule) IsLeaf() bool {
	return len(r.Sequence) == 0 && len(r.OneOf) == 0
}

// Validate checks the structural invariants a RuleSet requires: no nil
// nodes, known phase tags, and Sequence/OneOf exclusivity on every node
func Validate(roots []*Rule) error {
	return validateTree(roots)
}

// validateTree checks the Sequence/OneOf exclusivity invariant on every node
func validateTree(roots []*Rule) error {
	for i, rule := range roots {
		if err := validateRule(rule, i); err != nil {
			return err
		}
	}
	return nil
}

func validateRule(rule *Rule, index int) error {
	if rule == nil {
		return errors.Newf(errors.ErrTreeInvalid, "rule at index %d is nil", index)
	}
	if len(rule.Sequence) > 0 && len(rule.OneOf) > 0 {
		return errors.New(errors.ErrTreeInvalid,
			"rule has both sequence and oneOf children").
			WithDetail("index", index)
	}
	if !rule.Phase.Valid() {
		return errors.Newf(errors.ErrTreeInvalid, "rule has unknown phase %q", rule.Phase).
			WithDetail("index", index)
	}
	for i, child := range rule.Sequence {
		if err := validateRule(child, i); err != nil {
			return err
		}
	}
	for i, child := range rule.OneOf {
		if err := validateRule(child, i); err != nil {
			return err
		}
	}
	return nil
}
