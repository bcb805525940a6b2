package termline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectCandidates(t *testing.T) {
	gitHandler := func(index int, tokens []string) ([]string, error) {
		return []string{"status", "stash", "show"}, nil
	}

	t.Run("filters by last token, preserves handler order", func(t *testing.T) {
		got := collectCandidates([]AutocompleteHandler{gitHandler}, "git st", nil)
		assert.Equal(t, []string{"status", "stash"}, got)
	})

	t.Run("blank input completes a fresh first token", func(t *testing.T) {
		var gotIndex int
		var gotTokens []string
		handler := func(index int, tokens []string) ([]string, error) {
			gotIndex, gotTokens = index, tokens
			return []string{"anything"}, nil
		}
		got := collectCandidates([]AutocompleteHandler{handler}, "", nil)
		assert.Equal(t, []string{"anything"}, got)
		assert.Equal(t, 0, gotIndex)
		assert.Empty(t, gotTokens)
	})

	t.Run("trailing whitespace completes a fresh token", func(t *testing.T) {
		var gotIndex int
		handler := func(index int, tokens []string) ([]string, error) {
			gotIndex = index
			return []string{"commit"}, nil
		}
		got := collectCandidates([]AutocompleteHandler{handler}, "git ", nil)
		assert.Equal(t, []string{"commit"}, got)
		assert.Equal(t, 1, gotIndex, "index advances past the existing token")
	})

	t.Run("results concatenate in registration order", func(t *testing.T) {
		first := func(index int, tokens []string) ([]string, error) { return []string{"bb", "aa"}, nil }
		second := func(index int, tokens []string) ([]string, error) { return []string{"ab"}, nil }
		got := collectCandidates([]AutocompleteHandler{first, second}, "", nil)
		assert.Equal(t, []string{"bb", "aa", "ab"}, got, "no sorting or dedup at this layer")
	})
}

func TestCollectCandidatesIsolatesFailures(t *testing.T) {
	failing := func(index int, tokens []string) ([]string, error) {
		return nil, errors.New("backend unavailable")
	}
	panicking := func(index int, tokens []string) ([]string, error) {
		panic("boom")
	}
	healthy := func(index int, tokens []string) ([]string, error) {
		return []string{"ok"}, nil
	}

	var warnings []error
	warn := func(err error) { warnings = append(warnings, err) }

	got := collectCandidates([]AutocompleteHandler{failing, panicking, healthy}, "", warn)
	assert.Equal(t, []string{"ok"}, got, "broken handlers contribute nothing")
	assert.Len(t, warnings, 2, "each failure is reported")
}

func TestSharedFragment(t *testing.T) {
	tests := []struct {
		name       string
		fragment   string
		candidates []string
		want       string
		wantOK     bool
	}{
		{name: "common prefix found", fragment: "", candidates: []string{"list", "load", "ls"}, want: "l", wantOK: true},
		{name: "no common prefix", fragment: "", candidates: []string{"cat", "dog"}, want: "", wantOK: false},
		{name: "extends typed token", fragment: "he", candidates: []string{"help", "history"}, want: "hel", wantOK: true},
		{name: "fixed point at full candidate", fragment: "help", candidates: []string{"help"}, want: "help", wantOK: true},
		{name: "precondition violation", fragment: "x", candidates: []string{"abc", "abd"}, want: "", wantOK: false},
		{name: "single candidate", fragment: "st", candidates: []string{"status"}, want: "status", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sharedFragment(tt.fragment, tt.candidates)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewFileAutocompleteHandler(t *testing.T) {
	handler := NewFileAutocompleteHandler()
	if handler == nil {
		t.Fatal("NewFileAutocompleteHandler() returned nil")
	}

	candidates, err := handler(0, nil)
	if err != nil {
		t.Fatalf("handler failed on current directory: %v", err)
	}
	if len(candidates) == 0 {
		t.Error("expected at least one candidate for the current directory")
	}
}
