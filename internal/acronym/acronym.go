// Package acronym implements a trie of recognized acronyms (URL, HTTP, API,
// 2FA, 3D, ...) with longest-prefix-at-position lookup, used by casemodel's
// tokenizer to keep acronyms as single tokens instead of splitting on case or
// digit boundaries.
package acronym

type node struct {
	children map[byte]*node
	terminal bool
	text     string
}

func newNode() *node {
	return &node{children: make(map[byte]*node)}
}

// Set is a trie of acronym spellings plus an enabled flag. A disabled Set
// behaves as if empty, which lets callers toggle acronym-awareness without
// rebuilding the trie.
type Set struct {
	root    *node
	enabled bool
	words   map[string]bool
}

// Default returns the built-in acronym set shipped with renamify.
func Default() *Set {
	return New(defaultAcronyms)
}

// New builds a Set from the given acronym spellings (case-sensitive as
// given; lookups match only the exact casing).
func New(words []string) *Set {
	s := &Set{root: newNode(), enabled: true, words: make(map[string]bool)}
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts a new acronym spelling into the set.
func (s *Set) Add(word string) {
	if word == "" {
		return
	}
	s.words[word] = true
	cur := s.root
	for i := 0; i < len(word); i++ {
		b := word[i]
		child, ok := cur.children[b]
		if !ok {
			child = newNode()
			cur.children[b] = child
		}
		cur = child
	}
	cur.terminal = true
	cur.text = word
}

// SetEnabled toggles whether the acronym set participates in tokenization.
func (s *Set) SetEnabled(enabled bool) { s.enabled = enabled }

// Enabled reports whether acronym recognition is active.
func (s *Set) Enabled() bool { return s.enabled }

// IsAcronym reports whether word is a recognized acronym, matched exactly.
func (s *Set) IsAcronym(word string) bool {
	if !s.enabled || word == "" {
		return false
	}
	return s.words[word]
}

// FindLongestMatch returns the longest acronym whose spelling begins at byte
// offset pos within text, or "" if none matches. It walks the trie one byte at
// a time, remembering the deepest terminal node seen.
func (s *Set) FindLongestMatch(text string, pos int) string {
	if !s.enabled || pos >= len(text) {
		return ""
	}
	cur := s.root
	best := ""
	for i := pos; i < len(text); i++ {
		child, ok := cur.children[text[i]]
		if !ok {
			break
		}
		cur = child
		if cur.terminal {
			best = cur.text
		}
	}
	return best
}

// defaultAcronyms is the built-in recognized-acronym list. It is
// deliberately small and tunable, matching the Rust original's own compact
// table.
var defaultAcronyms = []string{
	"API", "URL", "URI", "HTTP", "HTTPS", "JSON", "XML", "HTML", "CSS",
	"SQL", "DB", "ID", "UUID", "UI", "CLI", "CPU", "GPU", "RAM", "IO",
	"TCP", "UDP", "IP", "DNS", "SSH", "SSL", "TLS", "JWT", "OAUTH",
	"REST", "RPC", "GRPC", "AWS", "GCP", "S3", "EC2", "ARM", "OS",
	"2FA", "3D", "IOS", "AI", "ML", "LLM", "PDF", "CSV", "YAML", "TOML",
	"ASCII", "UTF8", "QA", "CI", "CD", "VM", "FS", "WSL",
}
