package rules

// Visitor is invoked once per node during traversal. parent points at the
// slice the rule lives in (the caller's root slice for top-level rules, the
// containing Sequence or OneOf field otherwise) and is nil only for the
// synthetic root. Returning true prunes the node's subtree and, within a
// OneOf set, stops later siblings from being visited.
type Visitor func(rule *Rule, norm *NormalizedRule, parent *[]*Rule) bool

// Action is a side effect fired for a matching rule together with its
// parent collection
type Action func(rule *Rule, parent *[]*Rule)

// walk runs a depth-first pre-order traversal of the rule tree and its
// normalized shadow in lock-step. The caller's root lists are wrapped in a
// synthetic root node, so the visitor sees one extra invocation with a nil
// parent. The return reports whether any visit returned true.
func (rs *RuleSet) walk(v Visitor) bool {
	root := &Rule{Sequence: *rs.roots}
	normRoot := &NormalizedRule{Sequence: rs.normalized}

	if v(root, normRoot, nil) {
		return true
	}

	// Top-level children get the caller's live slice as parent so that
	// splices write through to the caller's variable.
	matched := false
	for i, child := range *rs.roots {
		if rs.walkNode(v, child, normChild(rs.normalized, i), rs.roots) {
			matched = true
		}
	}
	return matched
}

// walkNode visits one node and recurses. Sequence children are all visited
// regardless of earlier results; OneOf children stop at the first child
// whose subtree reports a match.
func (rs *RuleSet) walkNode(v Visitor, rule *Rule, norm *NormalizedRule, parent *[]*Rule) bool {
	if norm == nil {
		// Rules spliced in after construction have no normalized
		// counterpart until the RuleSet is rebuilt; they walk as
		// predicate-less nodes.
		norm = &NormalizedRule{}
	}

	if v(rule, norm, parent) {
		return true
	}

	matched := false
	for i, child := range rule.Sequence {
		if rs.walkNode(v, child, normChild(norm.Sequence, i), &rule.Sequence) {
			matched = true
		}
	}
	for i, child := range rule.OneOf {
		if rs.walkNode(v, child, normChild(norm.OneOf, i), &rule.OneOf) {
			matched = true
			break
		}
	}
	return matched
}

func normChild(children []*NormalizedRule, i int) *NormalizedRule {
	if i < len(children) {
		return children[i]
	}
	return nil
}

// walkAll runs the same traversal but ignores visitor results, forcing a
// full visit of every OneOf branch
func (rs *RuleSet) walkAll(v Visitor) {
	rs.walk(func(rule *Rule, norm *NormalizedRule, parent *[]*Rule) bool {
		v(rule, norm, parent)
		return false
	})
}
