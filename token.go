package termline

import (
	"regexp"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

var (
	// Operator split used by the incomplete-input heuristic. Alternation
	// order matters: && and || must win over a bare |.
	operatorRE = regexp.MustCompile(`&&|\|\||\|`)

	// A space or tab at the end of a line, not escaped by a backslash.
	tailingWhitespaceRE = regexp.MustCompile(`(?m)[^\\][ \t]$`)
)

// tokenize splits input into shell-style words, honoring quoting. Inputs
// the shell parser rejects (typically unterminated quotes, which are
// routine while a command is still being typed) fall back to plain
// whitespace splitting so completion keeps working mid-edit.
func tokenize(input string) []string {
	tokens, err := shellwords.Parse(input)
	if err != nil {
		return strings.Fields(input)
	}
	return tokens
}

// isIncompleteInput reports whether input looks like an unfinished command
// that should receive a continuation line instead of being submitted:
// unbalanced single or double quotes, a dangling boolean/pipe operator, or
// a trailing backslash that is not itself escaped. Blank input is always
// complete.
func isIncompleteInput(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}

	if strings.Count(input, "'")%2 != 0 {
		return true
	}
	if strings.Count(input, `"`)%2 != 0 {
		return true
	}

	segments := operatorRE.Split(input, -1)
	if strings.TrimSpace(segments[len(segments)-1]) == "" {
		return true
	}

	if strings.HasSuffix(input, `\`) && !strings.HasSuffix(input, `\\`) {
		return true
	}
	return false
}

// hasTailingWhitespace reports whether input ends a line with an unescaped
// space or tab, meaning the cursor sits at a fresh token boundary.
func hasTailingWhitespace(input string) bool {
	return tailingWhitespaceRE.MatchString(input)
}

// lastToken returns the token being typed at the end of input, or "" when
// input is blank or ends in whitespace.
func lastToken(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if hasTailingWhitespace(input) {
		return ""
	}
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}
