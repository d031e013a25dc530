package synthesizer

import (
	"workbenchpatchi/helpers"
	"workbenchpatchi/locator"
)

const (
	TOKEN_SCOPE_CLAUDE37_ONLY = "claude37_only"
	TOKEN_SCOPE_ALL_MODELS    = "all_models"

	UI_STYLE_GRADIENT = "gradient"
	UI_STYLE_RED      = "red"
	UI_STYLE_ANIMATED = "animated"

	DEFAULT_TOKEN_LIMIT  = 200000
	DEFAULT_MODEL_MARKER = "claude-3.7"
	THINKING_LEVEL_HIGH  = "high"

	SUBTITLE_LABEL     = "HACKED"
	SERIALIZABLE_LABEL = "3.7 Hacked"
)

var token_scope_aliases = map[string]string{
	TOKEN_SCOPE_CLAUDE37_ONLY: TOKEN_SCOPE_CLAUDE37_ONLY,
	"restricted-model-only":   TOKEN_SCOPE_CLAUDE37_ONLY,
	TOKEN_SCOPE_ALL_MODELS:    TOKEN_SCOPE_ALL_MODELS,
	"all-models":              TOKEN_SCOPE_ALL_MODELS,
}

var UI_STYLE_CLASSES = map[string]string{
	UI_STYLE_GRADIENT: "!opacity-100 gradient-text-high font-bold",
	UI_STYLE_RED:      "!opacity-100 text-red-600 font-bold",
	UI_STYLE_ANIMATED: "!opacity-100 text-red-500 animate-pulse font-bold",
}

// Synthesizer builds the replacement for a located fragment. It only ever
// sees the fragment, never the text around it.
type Synthesizer interface {
	Synthesize(locator.Fragment) (string, error)
}

// NormalizeTokenScope maps a scope name or one of its aliases to its canonical name.
func NormalizeTokenScope(scope string) (string, error) {
	canonical, found := token_scope_aliases[scope]
	if !found {
		return "", helpers.WrapError(helpers.ErrInvalidConfig, "unknown token scope %q, allowed are: %q", scope, []string{TOKEN_SCOPE_CLAUDE37_ONLY, TOKEN_SCOPE_ALL_MODELS})
	}
	return canonical, nil
}

func ValidateUIStyle(style string) error {
	if _, found := UI_STYLE_CLASSES[style]; !found {
		return helpers.WrapError(helpers.ErrInvalidConfig, "unknown UI style %q, allowed are: %q", style, []string{UI_STYLE_GRADIENT, UI_STYLE_RED, UI_STYLE_ANIMATED})
	}
	return nil
}
