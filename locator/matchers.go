package locator

import (
	"workbenchpatchi/scanner"

	"fmt"
	"regexp"
	"strings"
)

const (
	REGEXP_FUNCTION_HEADER       = `\b%s\s*\(\s*([\w$]+)\s*\)\s*\{`
	REGEXP_ASYNC_FUNCTION_HEADER = `\basync\s+%s\s*\(\s*([\w$]+)\s*\)\s*\{`
)

// functionMatcher finds a single-parameter function or method definition and
// spans its body with the bracket scanner, so nested literals do not cut it short.
type functionMatcher struct {
	header *regexp.Regexp
}

func NewFunctionMatcher(name string, async bool) Matcher {
	header_format := REGEXP_FUNCTION_HEADER
	if async {
		header_format = REGEXP_ASYNC_FUNCTION_HEADER
	}
	return &functionMatcher{header: regexp.MustCompile(fmt.Sprintf(header_format, regexp.QuoteMeta(name)))}
}

func (fm *functionMatcher) Match(text string) (Fragment, bool) {
	offset := 0
	for offset < len(text) {
		loc := fm.header.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			return Fragment{}, false
		}
		start := offset + loc[0]
		open := offset + loc[1] - 1
		end, err := scanner.MatchingBrace(text, open)
		if err != nil {
			// a header we cannot span, try the next one
			offset = offset + loc[1]
			continue
		}
		return Fragment{
			Text:   text[start : end+1],
			Start:  start,
			End:    end + 1,
			Open:   open - start,
			Groups: []string{text[offset+loc[2] : offset+loc[3]]},
		}, true
	}
	return Fragment{}, false
}

// regexpMatcher matches a literal shape exactly; field order and presence matter.
type regexpMatcher struct {
	re *regexp.Regexp
}

func NewRegexpMatcher(expression string) Matcher {
	return &regexpMatcher{re: regexp.MustCompile(expression)}
}

func (rm *regexpMatcher) Match(text string) (Fragment, bool) {
	loc := rm.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Fragment{}, false
	}
	fragment := Fragment{
		Text:  text[loc[0]:loc[1]],
		Start: loc[0],
		End:   loc[1],
		Open:  strings.IndexByte(text[loc[0]:loc[1]], '{'),
	}
	for g := 2; g+1 < len(loc); g += 2 {
		if loc[g] < 0 {
			fragment.Groups = append(fragment.Groups, "")
			continue
		}
		fragment.Groups = append(fragment.Groups, text[loc[g]:loc[g+1]])
	}
	return fragment, true
}

func FunctionDefinition(name string, async bool) Pattern {
	construct := fmt.Sprintf("%s function", name)
	if async {
		construct = fmt.Sprintf("async %s function", name)
	}
	return Pattern{
		Construct: construct,
		Primary:   NewFunctionMatcher(name, async),
	}
}

func ObjectLiteral(construct, spaced, minified string) Pattern {
	return Pattern{
		Construct: construct,
		Primary:   NewRegexpMatcher(spaced),
		Fallback:  NewRegexpMatcher(minified),
	}
}
