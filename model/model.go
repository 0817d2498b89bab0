// Package model holds the shared data types for the lookup engine.
package model

// ContentKind tags the variant held by a Content value.
type ContentKind int

const (
	// Text is a literal string, possibly with embedded newlines that
	// represent separate display lines.
	Text ContentKind = iota
	// List is an ordered run of nested content values.
	List
	// Node wraps a single nested content value.
	Node
)

// Content is one node of a structured-content definition tree. The tree has
// no fixed depth bound. Exactly one variant field is meaningful, selected by
// Kind: Str for Text, Items for List, Child for Node. A Node with a nil
// Child renders nothing.
type Content struct {
	Kind  ContentKind `json:"kind"`
	Str   string      `json:"str,omitempty"`
	Items []Content   `json:"items,omitempty"`
	Child *Content    `json:"child,omitempty"`
}

// Entry is a single dictionary headword normalized from a term-bank tuple.
type Entry struct {
	Term     string   `json:"term"`
	Reading  string   `json:"reading"`
	Tags     []string `json:"tags,omitempty"`
	Rules    string   `json:"rules,omitempty"`
	Score    int      `json:"score,omitempty"`
	Sequence int      `json:"sequence,omitempty"`
	TermTags string   `json:"term_tags,omitempty"`
	Content  Content  `json:"content"`
}

// Match groups the entries a single collection contributed to a query.
type Match struct {
	Collection string   `json:"collection"`
	Entries    []*Entry `json:"entries"`
}

// Rendered is the display form of a matched entry: the headword fields plus
// the already-flattened definition lines. The caller owns all actual output
// formatting.
type Rendered struct {
	Term        string   `json:"term"`
	Reading     string   `json:"reading,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Definitions []string `json:"definitions"`
}
