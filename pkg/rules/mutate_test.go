// Test Type: Unit Test
// Description: Positional insertion adjacent to a uniquely matched rule

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loaderkit/ruletree/pkg/errors"
	"github.com/loaderkit/ruletree/pkg/rules"
)

func TestInsertBefore(t *testing.T) {
	tr := newPipelineTree()
	rs, err := rules.New(&tr.roots, noTests)
	require.NoError(t, err)

	newRule := &rules.Rule{Processor: "wasm-loader"}
	require.NoError(t, rs.InsertBefore(isOneOf(tr.jsRule), newRule))

	// New rule lands at the matched index; everything else shifts right
	assert.Equal(t,
		[]*rules.Rule{newRule, tr.jsRule, tr.imgRule, tr.cssRule, tr.defaultRule},
		tr.oneOfParent.OneOf)

	// The rest of the tree is untouched
	assert.Equal(t, []*rules.Rule{tr.preA, tr.preB, tr.oneOfParent}, tr.roots)
}

func TestInsertAfter(t *testing.T) {
	tr := newPipelineTree()
	rs, err := rules.New(&tr.roots, noTests)
	require.NoError(t, err)

	newRule := &rules.Rule{Processor: "wasm-loader"}
	require.NoError(t, rs.InsertAfter(isOneOf(tr.imgRule), newRule))

	assert.Equal(t,
		[]*rules.Rule{tr.jsRule, tr.imgRule, newRule, tr.cssRule, tr.defaultRule},
		tr.oneOfParent.OneOf)
}

func TestInsert_TopLevelWritesThroughCallersSlice(t *testing.T) {
	tr := newPipelineTree()
	rs, err := rules.New(&tr.roots, noTests)
	require.NoError(t, err)

	newRule := &rules.Rule{Phase: rules.PhasePre, Processor: "audit"}
	require.NoError(t, rs.InsertAfter(isOneOf(tr.preB), newRule))

	// The caller's own slice variable reflects the splice
	require.Len(t, tr.roots, 4)
	assert.Same(t, newRule, tr.roots[2])
	assert.Equal(t, tr.roots, rs.Rules())
}

func TestInsertFunc_TransformReceivesMatchAndParent(t *testing.T) {
	tr := newPipelineTree()
	rs, err := rules.New(&tr.roots, noTests)
	require.NoError(t, err)

	inserted := &rules.Rule{Processor: "derived"}
	err = rs.InsertBeforeFunc(isOneOf(tr.cssRule), func(matched *rules.Rule, parent []*rules.Rule) *rules.Rule {
		assert.Same(t, tr.cssRule, matched)
		assert.Equal(t, []*rules.Rule{tr.jsRule, tr.imgRule, tr.cssRule, tr.defaultRule}, parent)
		return inserted
	})
	require.NoError(t, err)

	assert.Same(t, inserted, tr.oneOfParent.OneOf[2])
	assert.Same(t, tr.cssRule, tr.oneOfParent.OneOf[3])
}

func TestInsert_IdentityNotStructuralEquality(t *testing.T) {
	// Two structurally identical siblings; the criterion selects the
	// second by pointer, and the insert must land next to that one
	first := &rules.Rule{Processor: "copy"}
	second := &rules.Rule{Processor: "copy"}
	parent := &rules.Rule{Sequence: []*rules.Rule{first, second}}
	roots := []*rules.Rule{parent}

	rs, err := rules.New(&roots, noTests)
	require.NoError(t, err)

	newRule := &rules.Rule{Processor: "between"}
	require.NoError(t, rs.InsertBefore(isOneOf(second), newRule))

	assert.Equal(t, []*rules.Rule{first, newRule, second}, parent.Sequence)
}

func TestInsert_CountMismatch(t *testing.T) {
	tr := newPipelineTree()
	rs, err := rules.New(&tr.roots, noTests)
	require.NoError(t, err)

	t.Run("zero_matches", func(t *testing.T) {
		err := rs.InsertAfter(rules.ByProcessor("nonexistent"), &rules.Rule{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCountMismatch))
	})

	t.Run("multiple_matches", func(t *testing.T) {
		err := rs.InsertAfter(isOneOf(tr.preA, tr.preB), &rules.Rule{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCountMismatch))
		assert.Equal(t, 2, errors.GetErrorDetails(err)["found"])
	})

	t.Run("failed_insert_leaves_tree_unchanged", func(t *testing.T) {
		assert.Len(t, tr.roots, 3)
		assert.Len(t, tr.oneOfParent.OneOf, 4)
	})
}

func TestInsert_MatchInsideOneOfUsesFirstMatchSemantics(t *testing.T) {
	// A criterion matching several oneOf siblings sees only the earliest
	// one, so the insert targets it rather than failing on count
	tr := newPipelineTree()
	rs, err := rules.New(&tr.roots, noTests)
	require.NoError(t, err)

	newRule := &rules.Rule{Processor: "first"}
	require.NoError(t, rs.InsertBefore(isOneOf(tr.jsRule, tr.imgRule, tr.cssRule), newRule))

	assert.Same(t, newRule, tr.oneOfParent.OneOf[0])
	assert.Len(t, tr.oneOfParent.OneOf, 5)
}

func TestInsert_InvalidTransforms(t *testing.T) {
	tr := newPipelineTree()
	rs, err := rules.New(&tr.roots, noTests)
	require.NoError(t, err)

	t.Run("nil_transform", func(t *testing.T) {
		err := rs.InsertAfterFunc(isOneOf(tr.jsRule), nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("transform_returning_nil", func(t *testing.T) {
		err := rs.InsertAfterFunc(isOneOf(tr.jsRule), func(*rules.Rule, []*rules.Rule) *rules.Rule {
			return nil
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("synthetic_root_has_no_parent", func(t *testing.T) {
		empty := []*rules.Rule{}
		emptySet, err := rules.New(&empty, noTests)
		require.NoError(t, err)

		// On an empty tree a vacuous criterion matches only the synthetic
		// root, which lives in no collection
		err = emptySet.InsertAfter(rules.Criterion{}, &rules.Rule{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

// Structural mutation does not refresh the normalized shadow; resource
// matching continues to see the pre-insert shape until the RuleSet is
// rebuilt.
func TestInsert_DoesNotRefreshNormalizedTree(t *testing.T) {
	tr := newPipelineTree()
	rs, err := rules.New(&tr.roots, mirror(suffixTests))
	require.NoError(t, err)

	newRule := &rules.Rule{
		Processor: "sass",
		Resource:  &rules.ResourceSpec{Test: ".scss"},
	}
	require.NoError(t, rs.InsertBefore(isOneOf(tr.jsRule), newRule))

	// The new rule has no normalized counterpart yet
	assert.Empty(t, rs.FilterAll(rules.ByResource(".scss")))

	// Rebuilding picks it up
	rebuilt, err := rules.New(&tr.roots, mirror(suffixTests))
	require.NoError(t, err)
	matched := rebuilt.FilterAll(rules.ByResource(".scss"))
	require.Len(t, matched, 1)
	assert.Same(t, newRule, matched[0])
}
