package locator

import (
	"workbenchpatchi/helpers"
)

const (
	VARIANT_PRIMARY  = "primary"
	VARIANT_FALLBACK = "fallback"
)

// Fragment is a contiguous piece of the text a Matcher recognized. Offsets
// refer to the text it was located in and go stale once that text changes.
type Fragment struct {
	Text  string
	Start int
	End   int
	// offset of the body's opening brace inside Text, -1 when there is none
	Open    int
	Variant string
	// regexp capture groups, e.g. the parameter name of a function
	Groups []string
}

type Matcher interface {
	Match(text string) (Fragment, bool)
}

// Pattern describes how to recognize a construct. Fallback may be nil.
type Pattern struct {
	Construct string
	Primary   Matcher
	Fallback  Matcher
}

// Locate returns the first fragment matched by the primary matcher, or by the
// fallback when the primary finds nothing.
func Locate(text string, pattern Pattern) (Fragment, error) {
	if pattern.Primary == nil {
		return Fragment{}, helpers.GenError("Pattern for %s has no primary matcher", pattern.Construct)
	}
	if fragment, ok := pattern.Primary.Match(text); ok {
		fragment.Variant = VARIANT_PRIMARY
		return fragment, nil
	}
	if pattern.Fallback != nil {
		if fragment, ok := pattern.Fallback.Match(text); ok {
			fragment.Variant = VARIANT_FALLBACK
			return fragment, nil
		}
	}
	return Fragment{}, helpers.WrapError(helpers.ErrPatternNotFound, "could not find %s", pattern.Construct)
}
