package patcher

import (
	"workbenchpatchi/locator"
	"workbenchpatchi/synthesizer"
)

const (
	SEQUENTIAL_PATCHER_TYPE = "SEQUENTIAL_PATCHER_TYPE"
)

type State string

const (
	STATE_PENDING           State = "PENDING"
	STATE_LOCATED           State = "LOCATED"
	STATE_SYNTHESIZED       State = "SYNTHESIZED"
	STATE_SUBSTITUTED       State = "SUBSTITUTED"
	STATE_NOT_FOUND         State = "NOT_FOUND"
	STATE_SYNTHESIS_FAILED  State = "SYNTHESIS_FAILED"
	STATE_SUBSTITUTION_NOOP State = "SUBSTITUTION_NOOP"
)

// Transform is one independent rewrite of the text.
type Transform struct {
	Name        string
	Pattern     locator.Pattern
	Synthesizer synthesizer.Synthesizer
	// optional, consulted only when the pattern matched nothing
	Hinter *locator.Hinter
}

// TransformResult records how a Transform ended. A result that was not
// applied always carries a Reason.
type TransformResult struct {
	Name      string   `yaml:"name"`
	Construct string   `yaml:"construct"`
	State     State    `yaml:"state"`
	Applied   bool     `yaml:"applied"`
	Reason    string   `yaml:"reason,omitempty"`
	Variant   string   `yaml:"variant,omitempty"`
	Hints     []string `yaml:"hints,omitempty"`
	Err       error    `yaml:"-"`
}

type Patcher interface {
	Apply(string, []Transform) (string, []TransformResult)
}

func NewPatcher(patcher_type string) Patcher {
	return (&sequentialPatcher{})
}
