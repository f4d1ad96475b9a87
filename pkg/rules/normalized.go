package rules

import (
	"github.com/loaderkit/ruletree/pkg/errors"
)

// NormalizedRule is the shadow node paired 1:1 by position with a Rule.
// The normalized tree is produced once, by the Normalizer given to New,
// and must mirror the rule tree's branching shape exactly.
type NormalizedRule struct {
	// ResourceTest reports whether this rule would process the given
	// resource path. Nil means the rule carries no resource predicate;
	// resource-clause criteria never match such a rule.
	ResourceTest func(path string) bool

	// Sequence mirrors the paired rule's Sequence
	Sequence []*NormalizedRule

	// OneOf mirrors the paired rule's OneOf
	OneOf []*NormalizedRule
}

// Normalizer produces the normalized shadow tree for a list of root rules.
// Implementations must return one NormalizedRule per input rule, with
// Sequence and OneOf lengths matching at every level.
type Normalizer func(roots []*Rule) ([]*NormalizedRule, error)

// checkShape verifies that the normalized tree mirrors the rule tree
func checkShape(roots []*Rule, normalized []*NormalizedRule) error {
	if len(roots) != len(normalized) {
		return errors.Newf(errors.ErrNormalize,
			"normalized tree has %d roots, rule tree has %d", len(normalized), len(roots))
	}
	for i, rule := range roots {
		if err := checkNodeShape(rule, normalized[i]); err != nil {
			return err
		}
	}
	return nil
}

func checkNodeShape(rule *Rule, norm *NormalizedRule) error {
	if norm == nil {
		return errors.New(errors.ErrNormalize, "normalized tree has a nil node")
	}
	if len(rule.Sequence) != len(norm.Sequence) {
		return errors.Newf(errors.ErrNormalize,
			"normalized sequence has %d children, rule has %d",
			len(norm.Sequence), len(rule.Sequence))
	}
	if len(rule.OneOf) != len(norm.OneOf) {
		return errors.Newf(errors.ErrNormalize,
			"normalized oneOf has %d children, rule has %d",
			len(norm.OneOf), len(rule.OneOf))
	}
	for i, child := range rule.Sequence {
		if err := checkNodeShape(child, norm.Sequence[i]); err != nil {
			return err
		}
	}
	for i, child := range rule.OneOf {
		if err := checkNodeShape(child, norm.OneOf[i]); err != nil {
			return err
		}
	}
	return nil
}
