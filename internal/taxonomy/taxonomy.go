// Package taxonomy resolves hierarchical disclosure codes into readable
// composite descriptions. A code of width 2, 4, 6 or 8 digits inherits
// meaning from its ancestor prefixes, so "03010101" reads as the level 1
// through level 4 labels merged into one phrase.
package taxonomy

import "strings"

// prefixWidths are the fixed code widths, root to leaf.
var prefixWidths = [4]int{2, 4, 6, 8}

// Entry is one taxonomy row: a code and its own (non-composite) label.
type Entry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Resolver maps codes to composite descriptions. The zero value is not
// usable; construct with NewResolver or NewResolverWithIndex.
type Resolver struct {
	index map[string]string
}

// NewResolver returns a Resolver over the built-in K.303 code index.
func NewResolver() *Resolver {
	return &Resolver{index: codeIndex}
}

// NewResolverWithIndex returns a Resolver over a caller-supplied index.
func NewResolverWithIndex(index map[string]string) *Resolver {
	return &Resolver{index: index}
}

// Lookup returns a single code's own label, without ancestor merging.
func (r *Resolver) Lookup(code string) (string, bool) {
	desc, ok := r.index[code]
	return desc, ok
}

// Ancestors returns the code's known ancestor chain, root to leaf,
// including the code itself when indexed. Unknown prefixes are skipped.
func (r *Resolver) Ancestors(code string) []Entry {
	code = strings.TrimSpace(code)
	var chain []Entry
	for _, w := range prefixWidths {
		if len(code) < w {
			break
		}
		prefix := code[:w]
		if desc, ok := r.index[prefix]; ok {
			chain = append(chain, Entry{Code: prefix, Description: desc})
		}
	}
	return chain
}

// Resolve returns the full hierarchical description of a code: the labels
// of its ancestor chain concatenated root to leaf, with overlapping words
// merged and later duplicate words dropped. Unknown codes resolve to "";
// Resolve never fails.
func (r *Resolver) Resolve(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}

	combined := ""
	for _, w := range prefixWidths {
		if len(code) < w {
			break
		}
		desc, ok := r.index[code[:w]]
		if !ok || desc == "" {
			continue
		}
		if combined == "" {
			combined = desc
		} else {
			combined = mergeDescriptions(combined, desc)
		}
	}

	return removeDuplicateWords(combined)
}

// ResolveJoined resolves each code and joins the non-empty descriptions
// with sep, preserving input order.
func (r *Resolver) ResolveJoined(codes []string, sep string) string {
	var descs []string
	for _, c := range codes {
		if d := r.Resolve(c); d != "" {
			descs = append(descs, d)
		}
	}
	return strings.Join(descs, sep)
}

// Describe formats a code with its full description, "CODE (description)",
// or just the bare code when nothing resolves.
func (r *Resolver) Describe(code string) string {
	desc := r.Resolve(code)
	if desc == "" {
		return code
	}
	return code + " (" + desc + ")"
}

// DescribeJoined formats a code list as "c1/c2 (desc1/desc2)" using sep in
// both halves. Codes with no description are left out of the description
// half; when none resolve the bare joined codes are returned.
func (r *Resolver) DescribeJoined(codes []string, sep string) string {
	if len(codes) == 0 {
		return ""
	}
	if len(codes) == 1 {
		return r.Describe(codes[0])
	}
	joined := strings.Join(codes, sep)
	descs := r.ResolveJoined(codes, sep)
	if descs == "" {
		return joined
	}
	return joined + " (" + descs + ")"
}

// mergeDescriptions appends next to current, trimming the longest run of
// words shared between the tail of current and the head of next. Parent
// labels often end with the word their child label begins with, and the
// merged phrase should carry it once.
func mergeDescriptions(current, next string) string {
	if next == "" {
		return current
	}
	if current == "" {
		return next
	}

	currentWords := strings.Fields(current)
	nextWords := strings.Fields(next)

	maxOverlap := len(currentWords)
	if len(nextWords) < maxOverlap {
		maxOverlap = len(nextWords)
	}

	overlap := 0
	for i := 1; i <= maxOverlap; i++ {
		if wordsEqual(currentWords[len(currentWords)-i:], nextWords[:i]) {
			overlap = i
		}
	}

	rest := nextWords[overlap:]
	if len(rest) == 0 {
		return current
	}
	return current + " " + strings.Join(rest, " ")
}

func wordsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// removeDuplicateWords keeps only the first occurrence of each word. This
// is the whole-string safeguard applied after the local overlap merge, for
// repeats that are not adjacent across levels.
func removeDuplicateWords(text string) string {
	if text == "" {
		return text
	}
	words := strings.Fields(text)
	seen := make(map[string]bool, len(words))
	result := words[:0]
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		result = append(result, w)
	}
	return strings.Join(result, " ")
}
