// Shared fixtures for the rules package tests.

package rules_test

import (
	"strings"

	"github.com/loaderkit/ruletree/pkg/rules"
)

// mirror builds a Normalizer producing a shadow tree of the same shape,
// with each node's ResourceTest derived by compile (nil compile leaves
// every predicate nil).
func mirror(compile func(*rules.Rule) func(string) bool) rules.Normalizer {
	var norm func(r *rules.Rule) *rules.NormalizedRule
	norm = func(r *rules.Rule) *rules.NormalizedRule {
		n := &rules.NormalizedRule{}
		if compile != nil {
			n.ResourceTest = compile(r)
		}
		for _, child := range r.Sequence {
			n.Sequence = append(n.Sequence, norm(child))
		}
		for _, child := range r.OneOf {
			n.OneOf = append(n.OneOf, norm(child))
		}
		return n
	}
	return func(roots []*rules.Rule) ([]*rules.NormalizedRule, error) {
		out := make([]*rules.NormalizedRule, 0, len(roots))
		for _, r := range roots {
			out = append(out, norm(r))
		}
		return out, nil
	}
}

// noTests mirrors the tree shape without any resource predicates
var noTests = mirror(nil)

// suffixTests gives every rule with a ResourceSpec a predicate accepting
// paths that end in the ResourceSpec Test string
func suffixTests(r *rules.Rule) func(string) bool {
	if r.Resource == nil {
		return nil
	}
	suffix := r.Resource.Test
	return func(path string) bool {
		return strings.HasSuffix(path, suffix)
	}
}

// pipelineTree is the concrete scenario used across the suite: two
// pre-phase rules followed by a first-match set of js/img/css/default.
type pipelineTree struct {
	preA, preB  *rules.Rule
	jsRule      *rules.Rule
	imgRule     *rules.Rule
	cssRule     *rules.Rule
	defaultRule *rules.Rule
	oneOfParent *rules.Rule
	roots       []*rules.Rule
}

func newPipelineTree() *pipelineTree {
	tr := &pipelineTree{
		preA: &rules.Rule{Phase: rules.PhasePre, Processor: "lint"},
		preB: &rules.Rule{Phase: rules.PhasePre, Processor: "license-check"},
		jsRule: &rules.Rule{
			Processors: []string{"babel-loader", "minify"},
			Resource:   &rules.ResourceSpec{Test: ".js"},
		},
		imgRule: &rules.Rule{
			Processor: "image-loader",
			Resource:  &rules.ResourceSpec{Test: ".png"},
		},
		cssRule: &rules.Rule{
			Processor: "css-loader",
			Resource:  &rules.ResourceSpec{Test: ".css"},
		},
		defaultRule: &rules.Rule{Processor: "copy"},
	}
	tr.oneOfParent = &rules.Rule{
		OneOf: []*rules.Rule{tr.jsRule, tr.imgRule, tr.cssRule, tr.defaultRule},
	}
	tr.roots = []*rules.Rule{tr.preA, tr.preB, tr.oneOfParent}
	return tr
}

// isOneOf matches any of the given rules by pointer identity
func isOneOf(targets ...*rules.Rule) rules.Criterion {
	return rules.ByPredicate(func(r *rules.Rule, _ *rules.NormalizedRule) bool {
		for _, target := range targets {
			if r == target {
				return true
			}
		}
		return false
	})
}
