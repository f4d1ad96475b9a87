package rules

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/loaderkit/ruletree/pkg/logging"
)

// Predicate is a caller-supplied test over a rule and its normalized
// counterpart
type Predicate func(rule *Rule, norm *NormalizedRule) bool

// Criterion describes which rules a query should select. Every field is an
// optional clause; all present clauses must pass for a rule to match. A
// criterion with no clauses matches every rule, the synthetic root included.
type Criterion struct {
	// Predicate is invoked with the rule and its normalized counterpart
	Predicate Predicate

	// Processor matches rules whose single processor reference, or any
	// entry of their processor list, contains this fragment
	Processor string

	// Phase matches rules with this phase tag; an empty rule phase reads
	// as normal. Empty means no phase clause.
	Phase Phase

	// Resource matches rules whose normalized resource predicate accepts
	// this path. An extension-shaped fragment such as ".css" is rewritten
	// into a synthetic filename; anything else resolves to an absolute
	// path against the working directory.
	Resource string
}

// ByPredicate builds a criterion from a bare predicate function
func ByPredicate(fn Predicate) Criterion {
	return Criterion{Predicate: fn}
}

// ByProcessor builds a criterion matching rules that reference a processor
// containing the given fragment
func ByProcessor(fragment string) Criterion {
	return Criterion{Processor: fragment}
}

// ByResource builds a criterion matching rules whose resource predicate
// accepts the given path or extension fragment
func ByResource(path string) Criterion {
	return Criterion{Resource: path}
}

// ByPhase builds a criterion matching rules tagged with the given phase
func ByPhase(phase Phase) Criterion {
	return Criterion{Phase: phase}
}

var (
	// extension-shaped fragments: a dot followed by 2-4 letters
	extensionRe = regexp.MustCompile(`^\.[A-Za-z]{2,4}$`)

	// processor identifiers: "babel-loader", "css.min". Anything with a
	// path separator or a leading dot or slash is treated as a path.
	processorNameRe = regexp.MustCompile(`^[A-Za-z0-9@][A-Za-z0-9@._-]*$`)
)

// ByQuery builds a criterion from a bare query string. Extension-shaped
// fragments (".css") and anything path-shaped become a resource clause;
// strings shaped like a processor identifier ("babel-loader") become a
// processor clause.
func ByQuery(s string) Criterion {
	if extensionRe.MatchString(s) {
		return Criterion{Resource: s}
	}
	if processorNameRe.MatchString(s) {
		return Criterion{Processor: s}
	}
	return Criterion{Resource: s}
}

// matcher is a compiled criterion. Clause evaluation order is a contract:
// phase first (cheapest rejection), then predicate, processor, resource.
type matcher struct {
	phase       Phase
	predicate   Predicate
	processor   string
	resource    string
	hasResource bool
}

// compile materializes the criterion's clauses. The resource candidate path
// is computed once here, not per test.
func compile(c Criterion) *matcher {
	m := &matcher{
		phase:     c.Phase,
		predicate: c.Predicate,
		processor: c.Processor,
	}
	if c.Resource != "" {
		m.hasResource = true
		m.resource = candidatePath(c.Resource)
	}

	logger := logging.GetLogger("rules.criterion")
	logger.Trace().
		Str("phase", string(m.phase)).
		Str("processor", m.processor).
		Str("resource", m.resource).
		Bool("hasPredicate", m.predicate != nil).
		Msg("compiled criterion")

	return m
}

// candidatePath turns the criterion's resource string into the path handed
// to normalized predicates. Extension fragments get a synthetic filename so
// extension-only matching works without a real file.
func candidatePath(s string) string {
	if extensionRe.MatchString(s) {
		return "fake_file_name" + s
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return s
	}
	return abs
}

// test reports whether the rule satisfies every present clause
func (m *matcher) test(rule *Rule, norm *NormalizedRule) bool {
	if m.phase != "" && rule.Phase.orNormal() != m.phase.orNormal() {
		return false
	}
	if m.predicate != nil && !m.predicate(rule, norm) {
		return false
	}
	if m.processor != "" && !referencesProcessor(rule, m.processor) {
		return false
	}
	if m.hasResource {
		if norm == nil || norm.ResourceTest == nil {
			return false
		}
		if !norm.ResourceTest(m.resource) {
			return false
		}
	}
	return true
}

// actionable wraps an action into a visitor: the action fires on a match,
// and the visitor's return is always the match result so it composes with
// the walker's short-circuit contract.
func (m *matcher) actionable(action Action) Visitor {
	return func(rule *Rule, norm *NormalizedRule, parent *[]*Rule) bool {
		matched := m.test(rule, norm)
		if matched && action != nil {
			action(rule, parent)
		}
		return matched
	}
}

// referencesProcessor reports whether the rule's single processor reference
// or any entry of its processor list contains the fragment
func referencesProcessor(rule *Rule, fragment string) bool {
	if rule.Processor != "" && strings.Contains(rule.Processor, fragment) {
		return true
	}
	for _, ref := range rule.Processors {
		if strings.Contains(ref, fragment) {
			return true
		}
	}
	return false
}
