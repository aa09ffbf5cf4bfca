// Theory construction: the frozen registry, the configuration read once
// at construction, and the supported-predicate set derived from them.
package strtheory

import (
	"fmt"
)

// Theory binds a frozen operator registry to an active configuration.
// Theories are immutable and safe to share across proof branches;
// per-session mutable state lives on Session.
type Theory struct {
	cfg       Config
	reg       *Registry
	supported SupportedSet
}

// NewTheory constructs a theory from a frozen registry and a
// configuration. With EagerAutomata set, the operator table (including
// every compiled transducer) is materialized here and compilation
// failures surface immediately; otherwise materialization waits for the
// first decision.
func NewTheory(cfg Config, reg *Registry) (*Theory, error) {
	if reg == nil {
		return nil, fmt.Errorf("strtheory: theory needs a frozen registry")
	}
	if cfg.EagerAutomata {
		if _, err := reg.Operators(); err != nil {
			return nil, fmt.Errorf("strtheory: eager operator materialization failed: %w", err)
		}
	}
	return &Theory{
		cfg:       cfg,
		reg:       reg,
		supported: SupportedPredicates(reg.Catalogue(), cfg),
	}, nil
}

// Config returns the configuration the theory was constructed with.
func (t *Theory) Config() Config { return t.cfg }

// Registry returns the frozen operator registry.
func (t *Theory) Registry() *Registry { return t.reg }

// Catalogue returns the symbol catalogue.
func (t *Theory) Catalogue() *Catalogue { return t.reg.Catalogue() }

// Supported returns the supported-predicate set.
func (t *Theory) Supported() SupportedSet { return t.supported }
