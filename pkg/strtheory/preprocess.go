// Preprocessing: the soundness gate a constraint set passes through
// before decision.
package strtheory

// Preprocess scans the constraint set for unsupported predicates and
// raises the session's incompleteness flag when any are present. The
// set itself is returned unchanged — preprocessing performs soundness
// bookkeeping only, no rewriting.
func (s *Session) Preprocess(cs *ConstraintSet) *ConstraintSet {
	for _, p := range s.theory.Supported().UnsupportedIn(cs) {
		s.markIncomplete(p)
	}
	return cs
}
