// Package rules provides querying and in-place mutation of nested rule trees
// that describe how a build pipeline routes input resources to processors.
//
// # Tree Shape
//
// A tree is an ordered list of root [Rule] nodes. Each rule may nest children
// in exactly one of two ways:
//
//   - Sequence: an ordered list of child rules, all of which are considered
//   - OneOf: a first-match set, where only the first matching child applies
//
// A rule with neither is a leaf. A rule never carries both Sequence and OneOf;
// this is validated when a [RuleSet] is constructed.
//
// # Normalization
//
// Resource matching is delegated to a parallel tree of [NormalizedRule] nodes
// produced by an injected [Normalizer]. The normalized tree mirrors the rule
// tree's branching shape one-to-one and gives each position an optional
// resource-testing predicate. Normalization runs exactly once, at
// construction. Structural mutations (InsertBefore, InsertAfter) do NOT
// refresh the normalized tree: callers that need resource matching after a
// mutation must rebuild the RuleSet.
//
// # Criteria
//
// Queries take a [Criterion], which combines up to four optional clauses:
// phase, predicate, processor-name fragment, and resource path. All present
// clauses must pass. A criterion with no clauses matches every rule.
//
// # First-Match Semantics
//
// Traversal mirrors the pipeline's real dispatch behavior: within a OneOf
// set, visiting stops at the first child whose subtree reports a match.
// The *All operation variants disable this and visit every node.
package rules
