// Package normalize provides the stock Normalizer for rule trees. It walks
// a rule tree and compiles every ResourceSpec into the resource-testing
// predicate carried by the normalized shadow tree. Rules without a
// ResourceSpec get no predicate, so resource criteria never match them.
package normalize

import (
	"github.com/loaderkit/ruletree/pkg/errors"
	"github.com/loaderkit/ruletree/pkg/logging"
	"github.com/loaderkit/ruletree/pkg/rules"
)

// Rules is a rules.Normalizer producing a shadow tree with the same
// branching shape as the input tree
func Rules(roots []*rules.Rule) ([]*rules.NormalizedRule, error) {
	logger := logging.GetLogger("normalize")

	normalized := make([]*rules.NormalizedRule, 0, len(roots))
	for i, rule := range roots {
		norm, err := normalizeRule(rule)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrNormalize,
				"failed to normalize rule at index %d", i)
		}
		normalized = append(normalized, norm)
	}

	logger.Debug().
		Int("rootCount", len(roots)).
		Msg("normalized rule tree")
	return normalized, nil
}

func normalizeRule(rule *rules.Rule) (*rules.NormalizedRule, error) {
	if rule == nil {
		return nil, errors.New(errors.ErrInvalidInput, "rule is nil")
	}

	norm := &rules.NormalizedRule{}

	if rule.Resource != nil {
		test, err := compileSpec(rule.Resource)
		if err != nil {
			return nil, err
		}
		norm.ResourceTest = test
	}

	for _, child := range rule.Sequence {
		childNorm, err := normalizeRule(child)
		if err != nil {
			return nil, err
		}
		norm.Sequence = append(norm.Sequence, childNorm)
	}
	for _, child := range rule.OneOf {
		childNorm, err := normalizeRule(child)
		if err != nil {
			return nil, err
		}
		norm.OneOf = append(norm.OneOf, childNorm)
	}

	return norm, nil
}

// compileSpec turns a ResourceSpec into a single predicate. All present
// constraints must accept the path; exclusion is checked first and wins. A
// spec naming no constraint at all accepts everything.
func compileSpec(spec *rules.ResourceSpec) (func(string) bool, error) {
	var accepts []func(string) bool

	if len(spec.Extensions) > 0 {
		accepts = append(accepts, extensionPredicate(spec.Extensions))
	}
	if spec.Test != "" {
		p, err := namePredicate(spec.Test)
		if err != nil {
			return nil, err
		}
		accepts = append(accepts, p)
	}
	if spec.PathPattern != "" {
		p, err := pathPatternPredicate(spec.PathPattern)
		if err != nil {
			return nil, err
		}
		accepts = append(accepts, p)
	}
	if len(spec.Include) > 0 {
		accepts = append(accepts, prefixPredicate(spec.Include))
	}

	var rejects func(string) bool
	if len(spec.Exclude) > 0 {
		rejects = prefixPredicate(spec.Exclude)
	}

	return func(path string) bool {
		if rejects != nil && rejects(path) {
			return false
		}
		for _, accept := range accepts {
			if !accept(path) {
				return false
			}
		}
		return true
	}, nil
}
