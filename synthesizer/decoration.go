package synthesizer

import (
	"workbenchpatchi/helpers"
	"workbenchpatchi/locator"
	"workbenchpatchi/scanner"

	"strconv"
	"strings"
)

const (
	FIELD_SUBTITLE           = "subTitle"
	FIELD_SUBTITLE_CLASS     = "subTitleClass"
	FIELD_SERIALIZABLE_TITLE = "_serializableTitle"
)

// fields the decoration writes itself; an original value for them is dropped
var superseded_fields = map[string]bool{
	FIELD_SUBTITLE:           true,
	FIELD_SUBTITLE_CLASS:     true,
	FIELD_SERIALIZABLE_TITLE: true,
}

type uiDecorationSynthesizer struct {
	style       string
	style_class string
}

func NewUIDecorationSynthesizer(style string) (Synthesizer, error) {
	if err := ValidateUIStyle(style); err != nil {
		return nil, err
	}
	return &uiDecorationSynthesizer{style: style, style_class: UI_STYLE_CLASSES[style]}, nil
}

// Synthesize rebuilds an `x = {...}` assignment with the original fields in
// their original order followed by the decoration fields. The spaced layout
// is used when the primary matcher hit, the minified one otherwise.
func (uds *uiDecorationSynthesizer) Synthesize(fragment locator.Fragment) (string, error) {
	if fragment.Open < 0 {
		return "", helpers.WrapError(helpers.ErrSynthesis, "fragment is not an object literal assignment: %q", fragment.Text)
	}
	close_idx, err := scanner.MatchingBrace(fragment.Text, fragment.Open)
	if err != nil {
		return "", helpers.WrapError(helpers.ErrSynthesis, "unable to span object literal: %s", err)
	}
	if strings.TrimSpace(fragment.Text[close_idx+1:]) != "" {
		return "", helpers.WrapError(helpers.ErrSynthesis, "object literal ends before the fragment does: %q", fragment.Text)
	}
	target := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(fragment.Text[:fragment.Open]), "="))
	if target == "" {
		return "", helpers.WrapError(helpers.ErrSynthesis, "object literal is not assigned to anything: %q", fragment.Text)
	}
	parts, err := scanner.SplitTopLevel(fragment.Text[fragment.Open+1:close_idx], ',')
	if err != nil {
		return "", helpers.WrapError(helpers.ErrSynthesis, "unable to split object literal fields: %s", err)
	}
	var fields []string
	for _, part := range parts {
		field := strings.TrimSpace(part)
		if field == "" || superseded_fields[fieldKey(field)] {
			continue
		}
		fields = append(fields, field)
	}

	if fragment.Variant == locator.VARIANT_FALLBACK {
		fields = append(fields,
			FIELD_SUBTITLE+":"+strconv.Quote(SUBTITLE_LABEL),
			FIELD_SUBTITLE_CLASS+":"+strconv.Quote(uds.style_class),
			FIELD_SERIALIZABLE_TITLE+":()=>"+strconv.Quote(SERIALIZABLE_LABEL),
		)
		return target + "={" + strings.Join(fields, ",") + "}", nil
	}
	fields = append(fields,
		FIELD_SUBTITLE+": "+strconv.Quote(SUBTITLE_LABEL),
		FIELD_SUBTITLE_CLASS+": "+strconv.Quote(uds.style_class),
		FIELD_SERIALIZABLE_TITLE+": () => "+strconv.Quote(SERIALIZABLE_LABEL),
	)
	return target + " = { " + strings.Join(fields, ", ") + " }", nil
}

// fieldKey returns the property name of an object literal member, "" for spreads.
func fieldKey(field string) string {
	if strings.HasPrefix(field, "...") {
		return ""
	}
	if field[0] == '"' || field[0] == '\'' {
		if end := strings.IndexByte(field[1:], field[0]); end >= 0 {
			return field[1 : end+1]
		}
		return field
	}
	if idx := strings.IndexAny(field, ":("); idx >= 0 {
		return strings.TrimSpace(field[:idx])
	}
	return field
}
