package termline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// AutocompleteHandler produces completion candidates for the token at
// position index within tokens. Handlers run in registration order; a
// handler that returns an error (or panics) contributes no candidates and
// does not affect the other handlers.
type AutocompleteHandler func(index int, tokens []string) ([]string, error)

// collectCandidates tokenizes input, determines the token being completed
// and gathers candidates from every handler, keeping registration order.
// Blank input completes a fresh first token; trailing whitespace completes
// a fresh token after the existing ones. The result is filtered to
// candidates that extend the token under the cursor. No deduplication or
// sorting happens here.
func collectCandidates(handlers []AutocompleteHandler, input string, warn func(error)) []string {
	tokens := tokenize(input)
	index := len(tokens) - 1
	expr := ""
	if index >= 0 {
		expr = tokens[index]
	}

	if strings.TrimSpace(input) == "" {
		index = 0
		expr = ""
	} else if hasTailingWhitespace(input) {
		index++
		expr = ""
	}

	var all []string
	for _, handler := range handlers {
		all = append(all, safeCandidates(handler, index, tokens, warn)...)
	}

	matching := make([]string, 0, len(all))
	for _, candidate := range all {
		if strings.HasPrefix(candidate, expr) {
			matching = append(matching, candidate)
		}
	}
	return matching
}

// safeCandidates invokes one handler, isolating failures: an error return
// or a panic is reported through warn and yields zero candidates.
func safeCandidates(handler AutocompleteHandler, index int, tokens []string, warn func(error)) (candidates []string) {
	defer func() {
		if r := recover(); r != nil {
			if warn != nil {
				warn(fmt.Errorf("autocomplete handler panicked: %v", r))
			}
			candidates = nil
		}
	}()

	candidates, err := handler(index, tokens)
	if err != nil {
		if warn != nil {
			warn(fmt.Errorf("autocomplete handler failed: %w", err))
		}
		return nil
	}
	return candidates
}

// sharedFragment extends fragment one rune at a time, following the first
// candidate, for as long as every candidate still starts with the extended
// fragment. It returns the longest such fragment. ok is false when the
// candidates share no usable prefix, including the case where a candidate
// does not start with the initial fragment (a caller-side precondition
// violation).
//
// candidates must be non-empty.
func sharedFragment(fragment string, candidates []string) (shared string, ok bool) {
	for {
		if len(fragment) >= len(candidates[0]) {
			return fragment, fragment != ""
		}

		_, size := utf8.DecodeRuneInString(candidates[0][len(fragment):])
		next := candidates[0][:len(fragment)+size]

		for _, candidate := range candidates {
			if !strings.HasPrefix(candidate, fragment) {
				return "", false
			}
			if !strings.HasPrefix(candidate, next) {
				return fragment, fragment != ""
			}
		}
		fragment = next
	}
}

// NewFileAutocompleteHandler returns a handler that completes file and
// directory names relative to the current working directory. Directories
// gain a trailing slash so completion can descend into them. Hidden files
// are offered only once the token itself starts with a dot.
func NewFileAutocompleteHandler() AutocompleteHandler {
	return func(index int, tokens []string) ([]string, error) {
		token := ""
		if index >= 0 && index < len(tokens) {
			token = tokens[index]
		}

		dir := filepath.Dir(token)
		base := filepath.Base(token)
		if token == "" {
			dir, base = ".", ""
		} else if strings.HasSuffix(token, "/") {
			dir, base = token, ""
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}

		candidates := make([]string, 0, len(entries))
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
				continue
			}
			if base != "" && !strings.HasPrefix(name, base) {
				continue
			}

			full := filepath.Join(dir, name)
			if dir == "." && !strings.HasPrefix(token, "./") {
				full = name
			}
			if entry.IsDir() {
				full += "/"
			}
			candidates = append(candidates, full)
		}
		return candidates, nil
	}
}
