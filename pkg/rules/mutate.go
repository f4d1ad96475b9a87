package rules

import (
	"slices"

	"github.com/loaderkit/ruletree/pkg/errors"
)

// TransformFunc produces the rule to insert, given the matched rule and the
// collection it lives in
type TransformFunc func(matched *Rule, parent []*Rule) *Rule

// InsertBefore splices newRule into the tree immediately before the single
// rule matching the criterion, inside that rule's own parent collection.
// The caller's tree is mutated in place; the normalized shadow is not
// refreshed.
func (rs *RuleSet) InsertBefore(c Criterion, newRule *Rule) error {
	return rs.insertRelative(0, c, literal(newRule))
}

// InsertAfter splices newRule immediately after the single rule matching
// the criterion
func (rs *RuleSet) InsertAfter(c Criterion, newRule *Rule) error {
	return rs.insertRelative(1, c, literal(newRule))
}

// InsertBeforeFunc is InsertBefore with the inserted rule produced by a
// transform invoked with the matched rule and its parent collection
func (rs *RuleSet) InsertBeforeFunc(c Criterion, transform TransformFunc) error {
	return rs.insertRelative(0, c, transform)
}

// InsertAfterFunc is InsertAfter with the inserted rule produced by a
// transform
func (rs *RuleSet) InsertAfterFunc(c Criterion, transform TransformFunc) error {
	return rs.insertRelative(1, c, transform)
}

func literal(newRule *Rule) TransformFunc {
	return func(*Rule, []*Rule) *Rule { return newRule }
}

// insertRelative locates the unique match together with its true parent
// collection and splices the transform's result at the matched index plus
// offset. The index is found by pointer identity, never value equality, so
// structurally identical siblings cannot be confused.
func (rs *RuleSet) insertRelative(offset int, c Criterion, transform TransformFunc) error {
	if transform == nil {
		return errors.New(errors.ErrInvalidInput, "insert transform is required")
	}

	type hit struct {
		rule   *Rule
		parent *[]*Rule
	}
	var hits []hit
	rs.walk(compile(c).actionable(func(rule *Rule, parent *[]*Rule) {
		hits = append(hits, hit{rule: rule, parent: parent})
	}))

	if len(hits) != 1 {
		return errors.Newf(errors.ErrCountMismatch,
			"expected exactly 1 matching rule, found %d", len(hits)).
			WithDetail("found", len(hits))
	}

	h := hits[0]
	if h.parent == nil {
		return errors.New(errors.ErrInvalidInput,
			"matched rule has no parent collection")
	}

	index := slices.Index(*h.parent, h.rule)
	if index < 0 {
		return errors.New(errors.ErrInternal,
			"matched rule not found in its parent collection")
	}

	newRule := transform(h.rule, *h.parent)
	if newRule == nil {
		return errors.New(errors.ErrInvalidInput, "insert transform returned nil")
	}

	*h.parent = slices.Insert(*h.parent, index+offset, newRule)

	rs.logger.Debug().
		Int("index", index+offset).
		Int("parentLen", len(*h.parent)).
		Msg("spliced rule into parent collection")
	return nil
}
