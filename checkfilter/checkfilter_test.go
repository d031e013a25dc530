package checkfilter

import (
	"testing"

	"workbenchpatchi/patcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestFinalizePartialSuccess(t *testing.T) {
	results := []patcher.TransformResult{
		{Name: "token-limit", Construct: "async getEffectiveTokenLimit function", State: patcher.STATE_SUBSTITUTED, Applied: true},
		{Name: "thinking-level", Construct: "getModeThinkingLevel function", State: patcher.STATE_SUBSTITUTION_NOOP, Reason: "substitution did not change the text: getModeThinkingLevel function is already patched"},
		{Name: "ui-decoration", Construct: "model entry", State: patcher.STATE_NOT_FOUND, Reason: "pattern not found: could not find model entry", Hints: []string{"line 2: a={...}..."}},
	}

	summary, err := NewCheckFilter(DEFAULT_CHECK_FILTER).Finalize("/tmp/workbench.js", "before", "after", results)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, []string{
		"thinking-level: already patched, left unchanged (getModeThinkingLevel function)",
		"ui-decoration: pattern drifted, expected construct not found (model entry)",
	}, summary.Warnings)

	rendered, err := summary.ToYAML()
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(rendered), &decoded))
	assert.Equal(t, "/tmp/workbench.js", decoded["file"])
	assert.Equal(t, 1, decoded["applied"])
	assert.Len(t, decoded["results"], 3)
	assert.Contains(t, rendered, "state: NOT_FOUND")
}

func TestFinalizeRejectsFailureWithoutReason(t *testing.T) {
	results := []patcher.TransformResult{
		{Name: "ui-decoration", State: patcher.STATE_NOT_FOUND},
	}
	_, err := NewCheckFilter(DEFAULT_CHECK_FILTER).Finalize("f", "same", "same", results)
	assert.Error(t, err)
}

func TestFinalizeRejectsInconsistentText(t *testing.T) {
	applied := []patcher.TransformResult{{Name: "token-limit", State: patcher.STATE_SUBSTITUTED, Applied: true}}
	_, err := NewCheckFilter(DEFAULT_CHECK_FILTER).Finalize("f", "same", "same", applied)
	assert.Error(t, err)

	failed := []patcher.TransformResult{{Name: "token-limit", State: patcher.STATE_NOT_FOUND, Reason: "gone"}}
	_, err = NewCheckFilter(DEFAULT_CHECK_FILTER).Finalize("f", "before", "after", failed)
	assert.Error(t, err)
}

func TestFinalizeSynthesisFailureWarning(t *testing.T) {
	results := []patcher.TransformResult{{Name: "x", State: patcher.STATE_SYNTHESIS_FAILED, Reason: "boom"}}
	summary, err := NewCheckFilter(DEFAULT_CHECK_FILTER).Finalize("f", "same", "same", results)
	require.NoError(t, err)
	assert.Equal(t, []string{"x: boom (SYNTHESIS_FAILED)"}, summary.Warnings)
}
