// Support classification: which predicates the theory decides
// completely under the active configuration.
//
// The rule: core string/regex predicates are always complete; the length
// predicate is complete exactly when length reasoning is enabled; user
// extensions and transducer predicates are complete by construction.
// Everything else declared in the catalogue is unsupported and, when
// encountered, downgrades the session's completeness claim.
package strtheory

// SupportedSet is the set of predicates considered semantically
// complete. It is computed once from the configuration at theory
// construction and never changes afterward.
type SupportedSet map[*Predicate]bool

// Contains reports membership.
func (s SupportedSet) Contains(p *Predicate) bool { return s[p] }

// SupportedPredicates classifies the catalogue's predicates under the
// given configuration. Pure and deterministic: the result depends only
// on the catalogue and the configuration flags.
func SupportedPredicates(cat *Catalogue, cfg Config) SupportedSet {
	lenPred := cat.PredicateOf(cat.Len)
	supported := make(SupportedSet, len(cat.Predicates()))
	for _, p := range cat.Predicates() {
		switch {
		case p == lenPred:
			supported[p] = cfg.Length.Enabled()
		case p.Kind() == KindCore:
			supported[p] = true
		case p.Kind() == KindExtra, p.Kind() == KindTransducer:
			// Extensions ship their own complete semantics.
			supported[p] = true
		}
	}
	return supported
}

// UnsupportedIn returns the predicates of the constraint set that fall
// outside the supported set, in first-occurrence order.
func (s SupportedSet) UnsupportedIn(cs *ConstraintSet) []*Predicate {
	var out []*Predicate
	seen := map[*Predicate]bool{}
	for _, a := range cs.Atoms() {
		p := a.Pred()
		if !s[p] && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
