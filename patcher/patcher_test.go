package patcher

import (
	"errors"
	"strings"
	"testing"

	"workbenchpatchi/helpers"
	"workbenchpatchi/locator"
	"workbenchpatchi/parser"
	"workbenchpatchi/synthesizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TOKEN_FUNCTION    = `async getEffectiveTokenLimit(e){const t=e.modelName;const n={a:{b:1}};return this.limits[t]??n.a.b}`
	THINKING_FUNCTION = `getModeThinkingLevel(e){return x.default}`
	SPACED_LITERAL    = `a = { ...e, title: "claude-3.7-sonnet", id: r, _serializableTitle: () => "claude-3.7-sonnet" }`
	MINIFIED_LITERAL  = `a={...e,title:"claude-3.7-sonnet",id:r,_serializableTitle:()=>"claude-3.7-sonnet"}`

	RESTRICTED_TOKEN_FUNCTION = "async getEffectiveTokenLimit(e){" +
		"\n  if(e.modelName && e.modelName.includes('claude-3.7')) return 200000;\n  \n  // Original function code below\n  " +
		"const t=e.modelName;const n={a:{b:1}};return this.limits[t]??n.a.b}"
	ALL_MODELS_TOKEN_FUNCTION = "async getEffectiveTokenLimit(e){" +
		"\n  return 200000; // Always use 200,000 token limit for all models\n  \n  // Original function code will never run\n  " +
		"const t=e.modelName;const n={a:{b:1}};return this.limits[t]??n.a.b}"
	PATCHED_THINKING_FUNCTION = "getModeThinkingLevel(e){\n  return \"high\";\n}"
)

func bundle(token, thinking, literal string) string {
	return `"use strict";var x={default:"medium"};` + "\n" +
		`class M{` + token + thinking + `render(e,r){let a;` + literal + `;return a}}` + "\n" +
		`//# sourceMappingURL=workbench.desktop.main.js.map` + "\n"
}

func transforms(t *testing.T, scope, style string) []Transform {
	t.Helper()
	cfg := parser.DefaultConfig()
	cfg.TokenScope = scope
	cfg.UIStyle = style
	result, err := NewWorkbenchTransforms(cfg)
	require.NoError(t, err)
	return result
}

func assertReasons(t *testing.T, results []TransformResult) {
	t.Helper()
	for _, result := range results {
		if !result.Applied {
			assert.NotEmpty(t, result.Reason, result.Name)
		}
	}
}

func TestApplyAllPolicies(t *testing.T) {
	token_replacements := map[string]string{
		synthesizer.TOKEN_SCOPE_CLAUDE37_ONLY: RESTRICTED_TOKEN_FUNCTION,
		synthesizer.TOKEN_SCOPE_ALL_MODELS:    ALL_MODELS_TOKEN_FUNCTION,
	}
	for scope, token_replacement := range token_replacements {
		for style, style_class := range synthesizer.UI_STYLE_CLASSES {
			t.Run(scope+"/"+style, func(t *testing.T) {
				literal_replacement := `a = { ...e, title: "claude-3.7-sonnet", id: r, subTitle: "HACKED", subTitleClass: "` + style_class + `", _serializableTitle: () => "3.7 Hacked" }`

				patched, results := NewPatcher(SEQUENTIAL_PATCHER_TYPE).Apply(bundle(TOKEN_FUNCTION, THINKING_FUNCTION, SPACED_LITERAL), transforms(t, scope, style))

				assert.Equal(t, bundle(token_replacement, PATCHED_THINKING_FUNCTION, literal_replacement), patched)
				require.Len(t, results, 3)
				assert.Equal(t, []string{TRANSFORM_TOKEN_LIMIT, TRANSFORM_THINKING_LEVEL, TRANSFORM_UI_DECORATION},
					[]string{results[0].Name, results[1].Name, results[2].Name})
				for _, result := range results {
					assert.True(t, result.Applied, result.Name)
					assert.Equal(t, STATE_SUBSTITUTED, result.State, result.Name)
					assert.Empty(t, result.Reason)
				}
				assert.Equal(t, locator.VARIANT_PRIMARY, results[2].Variant)
			})
		}
	}
}

func TestApplyTwiceReportsNoop(t *testing.T) {
	p := NewPatcher(SEQUENTIAL_PATCHER_TYPE)
	all := transforms(t, synthesizer.TOKEN_SCOPE_CLAUDE37_ONLY, synthesizer.UI_STYLE_GRADIENT)

	once, _ := p.Apply(bundle(TOKEN_FUNCTION, THINKING_FUNCTION, SPACED_LITERAL), all)
	twice, results := p.Apply(once, all)

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, "// Original function code below"))
	require.Len(t, results, 3)
	assert.Equal(t, STATE_SUBSTITUTION_NOOP, results[0].State)
	assert.True(t, errors.Is(results[0].Err, helpers.ErrSubstitutionNoop))
	assert.Equal(t, STATE_SUBSTITUTION_NOOP, results[1].State)
	// the decorated literal no longer has the shape the patterns look for
	assert.Equal(t, STATE_NOT_FOUND, results[2].State)
	for _, result := range results {
		assert.False(t, result.Applied)
	}
	assertReasons(t, results)
}

func TestApplyMinifiedUsesFallback(t *testing.T) {
	patched, results := NewPatcher(SEQUENTIAL_PATCHER_TYPE).Apply(
		bundle(TOKEN_FUNCTION, THINKING_FUNCTION, MINIFIED_LITERAL),
		transforms(t, synthesizer.TOKEN_SCOPE_CLAUDE37_ONLY, synthesizer.UI_STYLE_RED))

	require.Len(t, results, 3)
	assert.True(t, results[2].Applied)
	assert.Equal(t, locator.VARIANT_FALLBACK, results[2].Variant)
	assert.Equal(t, bundle(RESTRICTED_TOKEN_FUNCTION, PATCHED_THINKING_FUNCTION,
		`a={...e,title:"claude-3.7-sonnet",id:r,subTitle:"HACKED",subTitleClass:"!opacity-100 text-red-600 font-bold",_serializableTitle:()=>"3.7 Hacked"}`), patched)
}

func TestThinkingLevelIndependentOfTokenLimit(t *testing.T) {
	p := NewPatcher(SEQUENTIAL_PATCHER_TYPE)
	all := transforms(t, synthesizer.TOKEN_SCOPE_ALL_MODELS, synthesizer.UI_STYLE_GRADIENT)

	_, with_token := p.Apply(bundle(TOKEN_FUNCTION, THINKING_FUNCTION, SPACED_LITERAL), all)
	patched, without_token := p.Apply(bundle("", THINKING_FUNCTION, SPACED_LITERAL), all)

	assert.True(t, with_token[0].Applied)
	assert.False(t, without_token[0].Applied)
	assert.Equal(t, STATE_NOT_FOUND, without_token[0].State)
	assert.Equal(t, with_token[1].Applied, without_token[1].Applied)
	assert.Equal(t, with_token[1].State, without_token[1].State)
	assert.Contains(t, patched, PATCHED_THINKING_FUNCTION)
}

func TestMissingDecorationIsIsolated(t *testing.T) {
	patched, results := NewPatcher(SEQUENTIAL_PATCHER_TYPE).Apply(
		bundle(TOKEN_FUNCTION, THINKING_FUNCTION, `a={id:r}`),
		transforms(t, synthesizer.TOKEN_SCOPE_CLAUDE37_ONLY, synthesizer.UI_STYLE_GRADIENT))

	require.Len(t, results, 3)
	assert.True(t, results[0].Applied)
	assert.True(t, results[1].Applied)
	assert.False(t, results[2].Applied)
	assert.Equal(t, STATE_NOT_FOUND, results[2].State)
	assert.True(t, errors.Is(results[2].Err, helpers.ErrPatternNotFound))
	assert.Contains(t, results[2].Reason, UI_DECORATION_CONSTRUCT)
	assert.Empty(t, results[2].Hints)
	assert.Equal(t, bundle(RESTRICTED_TOKEN_FUNCTION, PATCHED_THINKING_FUNCTION, `a={id:r}`), patched)
}

func TestDriftedDecorationProducesHints(t *testing.T) {
	drifted := `a={...e,title:"claude-3.7-sonnet",id:r,icon:i,_serializableTitle:()=>"claude-3.7-sonnet"}`
	_, results := NewPatcher(SEQUENTIAL_PATCHER_TYPE).Apply(
		bundle(TOKEN_FUNCTION, THINKING_FUNCTION, drifted),
		transforms(t, synthesizer.TOKEN_SCOPE_CLAUDE37_ONLY, synthesizer.UI_STYLE_GRADIENT))

	require.Len(t, results, 3)
	assert.Equal(t, STATE_NOT_FOUND, results[2].State)
	require.Len(t, results[2].Hints, 1)
	assert.True(t, strings.HasPrefix(results[2].Hints[0], "line 2: "))
}

func TestThinkingLevelExample(t *testing.T) {
	patched, results := NewPatcher(SEQUENTIAL_PATCHER_TYPE).Apply(
		`getModeThinkingLevel(e){return x.default}`,
		transforms(t, synthesizer.TOKEN_SCOPE_CLAUDE37_ONLY, synthesizer.UI_STYLE_GRADIENT))

	assert.Contains(t, patched, `return "high";`)
	assert.NotContains(t, patched, "x.default")
	require.Len(t, results, 3)
	assert.True(t, results[1].Applied)
	assert.False(t, results[0].Applied)
	assert.False(t, results[2].Applied)
	assertReasons(t, results)
}

type failingSynthesizer struct{}

func (fs failingSynthesizer) Synthesize(locator.Fragment) (string, error) {
	return "", helpers.WrapError(helpers.ErrSynthesis, "broken on purpose")
}

func TestSynthesisFailureDoesNotAbort(t *testing.T) {
	text := `foo(e){return 1}getModeThinkingLevel(e){return 2}`
	chain := []Transform{
		{Name: "broken", Pattern: locator.FunctionDefinition("foo", false), Synthesizer: failingSynthesizer{}},
		{Name: TRANSFORM_THINKING_LEVEL, Pattern: locator.FunctionDefinition(THINKING_LEVEL_FUNCTION, false), Synthesizer: synthesizer.NewThinkingLevelSynthesizer(synthesizer.THINKING_LEVEL_HIGH)},
	}

	patched, results := NewPatcher(SEQUENTIAL_PATCHER_TYPE).Apply(text, chain)

	require.Len(t, results, 2)
	assert.Equal(t, STATE_SYNTHESIS_FAILED, results[0].State)
	assert.Contains(t, results[0].Reason, "broken on purpose")
	assert.True(t, results[1].Applied)
	assert.Equal(t, "foo(e){return 1}"+PATCHED_THINKING_FUNCTION, patched)
}

func TestNewWorkbenchTransformsRejectsBadPolicy(t *testing.T) {
	cfg := parser.DefaultConfig()
	cfg.UIStyle = "rainbow"
	_, err := NewWorkbenchTransforms(cfg)
	assert.True(t, errors.Is(err, helpers.ErrInvalidConfig))
}
