package synthesizer

import (
	"workbenchpatchi/helpers"
	"workbenchpatchi/locator"

	"fmt"
	"regexp"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
)

const (
	DEFAULT_PARAMETER = "e"

	RESTRICTED_PREFIX_FORMAT = "\n  if(%s.modelName && %s.modelName.includes('%s')) return %d;\n  \n  // Original function code below\n  "
	ALL_MODELS_PREFIX_FORMAT = "\n  return %d; // Always use %s token limit for all models\n  \n  // Original function code will never run\n  "
	THINKING_BODY_FORMAT     = "\n  return %s;\n}"

	// recognizes an override prefix spliced in by any earlier run, whatever its limit or marker
	REGEXP_OVERRIDE_PREFIX = "^(?:" +
		`\n  if\([\w$]+\.modelName && [\w$]+\.modelName\.includes\('[^'\n]*'\)\) return \d+;\n  \n  // Original function code below\n  ` +
		"|" +
		`\n  return \d+; // Always use [^\n]* limit for all models\n  \n  // Original function code will never run\n  ` +
		")"
)

var override_prefix_re = regexp.MustCompile(REGEXP_OVERRIDE_PREFIX)

type tokenLimitSynthesizer struct {
	scope  string
	limit  int
	marker string
}

func NewTokenLimitSynthesizer(scope string, limit int, marker string) (Synthesizer, error) {
	canonical_scope, err := NormalizeTokenScope(scope)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, helpers.WrapError(helpers.ErrInvalidConfig, "token limit must be positive, got %d", limit)
	}
	if marker == "" || strings.ContainsAny(marker, "'\\\n") {
		return nil, helpers.WrapError(helpers.ErrInvalidConfig, "model marker %q must be non-empty and may not contain quotes, backslashes or newlines", marker)
	}
	return &tokenLimitSynthesizer{scope: canonical_scope, limit: limit, marker: marker}, nil
}

// Synthesize splices the override in front of the original body. The body
// stays in place: reachable for other models, dead code for all_models.
func (ts *tokenLimitSynthesizer) Synthesize(fragment locator.Fragment) (string, error) {
	if fragment.Open < 0 {
		return "", helpers.WrapError(helpers.ErrSynthesis, "fragment has no function body: %q", fragment.Text)
	}
	param := parameterOf(fragment)
	header := fragment.Text[:fragment.Open+1]
	body := stripOverridePrefixes(fragment.Text[fragment.Open+1:])
	var prefix string
	if ts.scope == TOKEN_SCOPE_ALL_MODELS {
		prefix = fmt.Sprintf(ALL_MODELS_PREFIX_FORMAT, ts.limit, humanize.Comma(int64(ts.limit)))
	} else {
		prefix = fmt.Sprintf(RESTRICTED_PREFIX_FORMAT, param, param, ts.marker, ts.limit)
	}
	return header + prefix + body, nil
}

func stripOverridePrefixes(body string) string {
	for {
		loc := override_prefix_re.FindStringIndex(body)
		if loc == nil {
			return body
		}
		body = body[loc[1]:]
	}
}

type thinkingLevelSynthesizer struct {
	level string
}

func NewThinkingLevelSynthesizer(level string) Synthesizer {
	return &thinkingLevelSynthesizer{level: level}
}

// Synthesize drops the original body entirely.
func (tls *thinkingLevelSynthesizer) Synthesize(fragment locator.Fragment) (string, error) {
	if fragment.Open < 0 {
		return "", helpers.WrapError(helpers.ErrSynthesis, "fragment has no function body: %q", fragment.Text)
	}
	return fragment.Text[:fragment.Open+1] + fmt.Sprintf(THINKING_BODY_FORMAT, strconv.Quote(tls.level)), nil
}

func parameterOf(fragment locator.Fragment) string {
	if len(fragment.Groups) > 0 && fragment.Groups[0] != "" {
		return fragment.Groups[0]
	}
	return DEFAULT_PARAMETER
}
