package rules

import (
	"github.com/loaderkit/ruletree/pkg/errors"
	"github.com/loaderkit/ruletree/pkg/logging"
	"github.com/rs/zerolog"
)

// RuleSet pairs a caller-owned rule tree with its normalized shadow and
// exposes the query and mutation operations.
//
// The RuleSet holds a pointer to the caller's root slice and mutates it in
// place; it never copies the tree. The normalized shadow is computed once,
// at construction, and is NOT refreshed after a structural mutation —
// rebuild the RuleSet if resource matching is needed after an insert.
// Callers must not mutate the tree concurrently with RuleSet operations.
type RuleSet struct {
	roots      *[]*Rule
	normalized []*NormalizedRule
	logger     zerolog.Logger
}

// New builds a RuleSet over the caller's root rule list. The normalizer is
// invoked exactly once, synchronously, and its output is validated against
// the rule tree's shape.
func New(roots *[]*Rule, normalize Normalizer) (*RuleSet, error) {
	if roots == nil {
		return nil, errors.New(errors.ErrInvalidInput, "root rule list is required")
	}
	if normalize == nil {
		return nil, errors.New(errors.ErrInvalidInput, "normalizer is required")
	}
	if err := validateTree(*roots); err != nil {
		return nil, err
	}

	normalized, err := normalize(*roots)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrNormalize, "normalization failed")
	}
	if err := checkShape(*roots, normalized); err != nil {
		return nil, err
	}

	rs := &RuleSet{
		roots:      roots,
		normalized: normalized,
		logger:     logging.GetLogger("rules.ruleset"),
	}
	rs.logger.Debug().
		Int("rootCount", len(*roots)).
		Msg("ruleset constructed")
	return rs, nil
}

// Rules returns the caller's live root rule list
func (rs *RuleSet) Rules() []*Rule {
	return *rs.roots
}

// ForEachFirstMatch visits every node in pre-order (synthetic root
// included), honoring the visitor's prune signal and the OneOf first-match
// short-circuit. It reports whether any visit returned true.
func (rs *RuleSet) ForEachFirstMatch(v Visitor) bool {
	return rs.walk(v)
}

// ForEachAll visits every node in pre-order, synthetic root included,
// ignoring visitor results entirely
func (rs *RuleSet) ForEachAll(v Visitor) {
	rs.walkAll(v)
}

// MatchFirst fires action for each rule matching the criterion, honoring
// OneOf short-circuit and subtree pruning on a match. It reports whether
// anything matched.
func (rs *RuleSet) MatchFirst(c Criterion, action Action) bool {
	found := false
	rs.walk(compile(c).actionable(func(rule *Rule, parent *[]*Rule) {
		found = true
		if action != nil {
			action(rule, parent)
		}
	}))
	return found
}

// MatchAll fires action for every rule matching the criterion, with no
// short-circuit
func (rs *RuleSet) MatchAll(c Criterion, action Action) {
	rs.walkAll(compile(c).actionable(action))
}

// FilterFirst returns the rules matching the criterion in traversal order,
// honoring OneOf short-circuit: within a first-match set, only the earliest
// matching sibling (and nothing beneath a matched node) is collected.
func (rs *RuleSet) FilterFirst(c Criterion) []*Rule {
	var matched []*Rule
	rs.MatchFirst(c, func(rule *Rule, parent *[]*Rule) {
		matched = append(matched, rule)
	})
	return matched
}

// FilterAll returns every rule matching the criterion in traversal order
func (rs *RuleSet) FilterAll(c Criterion) []*Rule {
	var matched []*Rule
	rs.MatchAll(c, func(rule *Rule, parent *[]*Rule) {
		matched = append(matched, rule)
	})
	return matched
}

// GetExactlyOne returns the single rule matching the criterion. A criterion
// without a phase clause is narrowed to the normal phase first. Zero or
// multiple matches yield an ErrCountMismatch error.
func (rs *RuleSet) GetExactlyOne(c Criterion) (*Rule, error) {
	if c.Phase == "" {
		c.Phase = PhaseNormal
	}
	matched := rs.FilterFirst(c)
	if len(matched) != 1 {
		return nil, errors.Newf(errors.ErrCountMismatch,
			"expected exactly 1 matching rule, found %d", len(matched)).
			WithDetail("found", len(matched))
	}
	return matched[0], nil
}
