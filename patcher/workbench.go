package patcher

import (
	"workbenchpatchi/locator"
	"workbenchpatchi/parser"
	"workbenchpatchi/synthesizer"
)

const (
	TRANSFORM_TOKEN_LIMIT    = "token-limit"
	TRANSFORM_THINKING_LEVEL = "thinking-level"
	TRANSFORM_UI_DECORATION  = "ui-decoration"

	TOKEN_LIMIT_FUNCTION    = "getEffectiveTokenLimit"
	THINKING_LEVEL_FUNCTION = "getModeThinkingLevel"

	UI_DECORATION_CONSTRUCT = `claude-3.7-sonnet model entry (a = {...e, title, id, _serializableTitle})`
	// whitespace is required wherever the spaced bundle puts it
	REGEXP_UI_DECORATION_SPACED = `a\s+=\s+\{\s+\.\.\.e\s*,\s+title\s*:\s+"claude-3\.7-sonnet"\s*,\s+id\s*:\s+r\s*,\s+_serializableTitle\s*:\s+\(\s*\)\s+=>\s+"claude-3\.7-sonnet"\s+\}`
	// tolerates whitespace having been stripped anywhere
	REGEXP_UI_DECORATION_MINIFIED = `a\s*=\s*\{\s*\.\.\.e\s*,\s*title\s*:\s*"claude-3\.7-sonnet"\s*,\s*id\s*:\s*r\s*,\s*_serializableTitle\s*:\s*\(\s*\)\s*=>\s*"claude-3\.7-sonnet"\s*\}`
)

// NewWorkbenchTransforms builds the three rewrites of the workbench bundle in
// the order they are applied: token limit, thinking level, UI decoration.
func NewWorkbenchTransforms(cfg parser.Config) ([]Transform, error) {
	token_limit, err := synthesizer.NewTokenLimitSynthesizer(cfg.TokenScope, cfg.TokenLimit, cfg.ModelMarker)
	if err != nil {
		return nil, err
	}
	ui_decoration, err := synthesizer.NewUIDecorationSynthesizer(cfg.UIStyle)
	if err != nil {
		return nil, err
	}
	return []Transform{
		{
			Name:        TRANSFORM_TOKEN_LIMIT,
			Pattern:     locator.FunctionDefinition(TOKEN_LIMIT_FUNCTION, true),
			Synthesizer: token_limit,
			Hinter:      locator.NewHinter(TOKEN_LIMIT_FUNCTION),
		},
		{
			Name:        TRANSFORM_THINKING_LEVEL,
			Pattern:     locator.FunctionDefinition(THINKING_LEVEL_FUNCTION, false),
			Synthesizer: synthesizer.NewThinkingLevelSynthesizer(synthesizer.THINKING_LEVEL_HIGH),
			Hinter:      locator.NewHinter(THINKING_LEVEL_FUNCTION),
		},
		{
			Name:        TRANSFORM_UI_DECORATION,
			Pattern:     locator.ObjectLiteral(UI_DECORATION_CONSTRUCT, REGEXP_UI_DECORATION_SPACED, REGEXP_UI_DECORATION_MINIFIED),
			Synthesizer: ui_decoration,
			Hinter:      locator.NewHinter(`"claude-3.7-sonnet"`, "_serializableTitle", "id:r"),
		},
	}, nil
}
