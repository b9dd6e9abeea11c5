// ABOUTME: Fuzzy "did you mean" lookup for unknown inbound method names
// ABOUTME: Used only for diagnostics; the wire reply never changes

package protocol

import "github.com/sahilm/fuzzy"

// SuggestMethod returns the best known method matching name, or "" when
// nothing matches.
func SuggestMethod(name string) string {
	if name == "" {
		return ""
	}
	matches := fuzzy.Find(name, knownMethods)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
