package patcher

import (
	"workbenchpatchi/helpers"
	"workbenchpatchi/locator"

	log "github.com/sirupsen/logrus"
)

type sequentialPatcher struct {
}

// Apply runs every transform in order against the text produced by the
// previous one. A failing transform leaves the text as it was and the next
// one runs regardless.
func (sp *sequentialPatcher) Apply(text string, transforms []Transform) (string, []TransformResult) {
	results := make([]TransformResult, 0, len(transforms))
	for _, transform := range transforms {
		var result TransformResult
		text, result = sp.applySingle(text, transform)
		results = append(results, result)
	}
	return text, results
}

func (sp *sequentialPatcher) applySingle(text string, transform Transform) (string, TransformResult) {
	result := TransformResult{
		Name:      transform.Name,
		Construct: transform.Pattern.Construct,
		State:     STATE_PENDING,
	}

	fragment, err := locator.Locate(text, transform.Pattern)
	if err != nil {
		result.State = STATE_NOT_FOUND
		result.Err = err
		result.Reason = err.Error()
		result.Hints = transform.Hinter.Hints(text)
		return text, result
	}
	result.State = STATE_LOCATED
	result.Variant = fragment.Variant
	log.Debugf("%s: located %s (%s matcher) at [%d:%d]: %q", transform.Name, result.Construct, fragment.Variant, fragment.Start, fragment.End, fragment.Text)

	replacement, err := transform.Synthesizer.Synthesize(fragment)
	if err != nil {
		result.State = STATE_SYNTHESIS_FAILED
		result.Err = err
		result.Reason = err.Error()
		return text, result
	}
	result.State = STATE_SYNTHESIZED
	log.Debugf("%s: replacement: %q", transform.Name, replacement)

	patched := text[:fragment.Start] + replacement + text[fragment.End:]
	if patched == text {
		result.State = STATE_SUBSTITUTION_NOOP
		result.Err = helpers.WrapError(helpers.ErrSubstitutionNoop, "%s is already patched", result.Construct)
		result.Reason = result.Err.Error()
		return text, result
	}
	result.State = STATE_SUBSTITUTED
	result.Applied = true
	return patched, result
}
