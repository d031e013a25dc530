package scanner

import (
	"workbenchpatchi/helpers"

	"strings"
)

const (
	// marks a template literal body on the bracket stack
	FRAME_TEMPLATE = '`'
	// marks a ${ ... } substitution inside a template literal
	FRAME_SUBSTITUTION = '$'
	// previous significant token was an operand (identifier, literal, closing paren)
	PREV_OPERAND = 'a'
)

// chars after which a '/' starts a regular expression literal instead of a division
const REGEXP_PRECEDERS = "(,=:[!&|?{};+-*%<>~^"

var regexp_keywords = []string{"return", "typeof", "case", "void", "delete", "in", "of", "do", "else", "throw"}

// visitFunc is called for every character outside of strings, comments and
// template text. depth is the bracket depth after the character was handled.
// Returning false stops the walk at pos.
type visitFunc func(pos int, c byte, depth int) bool

// walk lexes text from position from on and reports code characters to visit.
// It returns the position where visit asked to stop, or len(text) when the
// end was reached with every bracket closed.
func walk(text string, from int, visit visitFunc) (int, error) {
	var stack []byte
	var prev byte
	n := len(text)
	i := from
	for i < n {
		c := text[i]
		if len(stack) > 0 && stack[len(stack)-1] == FRAME_TEMPLATE {
			switch {
			case c == '\\':
				i += 2
			case c == '`':
				stack = stack[:len(stack)-1]
				prev = PREV_OPERAND
				i++
			case c == '$' && i+1 < n && text[i+1] == '{':
				stack = append(stack, FRAME_SUBSTITUTION)
				prev = '{'
				i += 2
			default:
				i++
			}
			continue
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			i++
			continue
		case '"', '\'':
			end, err := skipQuoted(text, i)
			if err != nil {
				return i, err
			}
			prev = PREV_OPERAND
			i = end
			continue
		case '`':
			stack = append(stack, FRAME_TEMPLATE)
			i++
			continue
		case '/':
			if i+1 < n && text[i+1] == '/' {
				nl := strings.IndexByte(text[i:], '\n')
				if nl < 0 {
					i = n
				} else {
					i += nl
				}
				continue
			}
			if i+1 < n && text[i+1] == '*' {
				close_idx := strings.Index(text[i+2:], "*/")
				if close_idx < 0 {
					return i, helpers.GenError("Unterminated block comment at offset %d", i)
				}
				i += close_idx + 4
				continue
			}
			if regexpAllowed(text, i, prev) {
				if end, ok := skipRegexp(text, i); ok {
					prev = PREV_OPERAND
					i = end
					continue
				}
			}
		case '{', '(', '[':
			stack = append(stack, c)
		case '}', ')', ']':
			if len(stack) == 0 {
				return i, helpers.GenError("Unexpected '%c' at offset %d", c, i)
			}
			top := stack[len(stack)-1]
			if !closes(top, c) {
				return i, helpers.GenError("Mismatched '%c' at offset %d", c, i)
			}
			stack = stack[:len(stack)-1]
		}
		if !visit(i, c, len(stack)) {
			return i, nil
		}
		if c == ')' || c == ']' || isIdentChar(c) {
			prev = PREV_OPERAND
		} else {
			prev = c
		}
		i++
	}
	if len(stack) > 0 {
		return n, helpers.GenError("Unbalanced brackets: %d left open at end of text", len(stack))
	}
	return n, nil
}

func closes(open, close byte) bool {
	switch close {
	case '}':
		return open == '{' || open == FRAME_SUBSTITUTION
	case ')':
		return open == '('
	case ']':
		return open == '['
	}
	return false
}

func skipQuoted(text string, start int) (int, error) {
	quote := text[start]
	for j := start + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '\n':
			return start, helpers.GenError("Unterminated string literal at offset %d", start)
		case quote:
			return j + 1, nil
		}
	}
	return start, helpers.GenError("Unterminated string literal at offset %d", start)
}

// skipRegexp returns the end of the regular expression literal starting at
// start. ok is false when the line ends first, i.e. it was a division.
func skipRegexp(text string, start int) (int, bool) {
	in_class := false
	for j := start + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '\n':
			return start, false
		case '[':
			in_class = true
		case ']':
			in_class = false
		case '/':
			if !in_class {
				return j + 1, true
			}
		}
	}
	return start, false
}

func regexpAllowed(text string, pos int, prev byte) bool {
	if prev == 0 || strings.IndexByte(REGEXP_PRECEDERS, prev) >= 0 {
		return true
	}
	if prev != PREV_OPERAND {
		return false
	}
	word_end := pos
	for word_end > 0 && isSpace(text[word_end-1]) {
		word_end--
	}
	word_start := word_end
	for word_start > 0 && isIdentChar(text[word_start-1]) {
		word_start--
	}
	word := text[word_start:word_end]
	for _, keyword := range regexp_keywords {
		if word == keyword {
			return true
		}
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// MatchingBrace returns the offset of the bracket closing the one at open.
func MatchingBrace(text string, open int) (int, error) {
	if open < 0 || open >= len(text) || strings.IndexByte("{([", text[open]) < 0 {
		return -1, helpers.GenError("No opening bracket at offset %d", open)
	}
	found := false
	pos, err := walk(text, open, func(pos int, c byte, depth int) bool {
		if depth == 0 {
			found = true
			return false
		}
		return true
	})
	if err != nil {
		return -1, err
	}
	if !found {
		return -1, helpers.GenError("No closing bracket for offset %d", open)
	}
	return pos, nil
}

// SplitTopLevel splits text at every sep that is not nested inside brackets,
// strings, template literals, comments or regular expressions.
func SplitTopLevel(text string, sep byte) ([]string, error) {
	var parts []string
	last := 0
	_, err := walk(text, 0, func(pos int, c byte, depth int) bool {
		if c == sep && depth == 0 {
			parts = append(parts, text[last:pos])
			last = pos + 1
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return append(parts, text[last:]), nil
}
