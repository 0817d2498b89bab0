// Package render flattens structured-content definition trees into linear
// display lines.
package render

import (
	"strings"

	"jiten/model"
)

// Flatten walks a content tree depth-first and returns its display lines,
// each prefixed with the indent active at its nesting level. Text splits on
// newlines, with blank lines dropped and the rest trimmed. List elements
// flatten in order at the same indent. A Node keeps the current indent when
// its child is text, and indents two further spaces when its child is
// itself a list or node; this asymmetry matches the source dictionaries'
// convention that a leaf string closes a visual nesting level while a
// structural wrapper opens one. A Node without a child emits nothing.
func Flatten(c model.Content, indent string) []string {
	var lines []string
	flatten(c, indent, &lines)
	return lines
}

func flatten(c model.Content, indent string, out *[]string) {
	switch c.Kind {
	case model.Text:
		for _, line := range strings.Split(c.Str, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			*out = append(*out, indent+line)
		}
	case model.List:
		for _, item := range c.Items {
			flatten(item, indent, out)
		}
	case model.Node:
		if c.Child == nil {
			return
		}
		if c.Child.Kind == model.Text {
			flatten(*c.Child, indent, out)
			return
		}
		flatten(*c.Child, indent+"  ", out)
	}
}

// Entry converts a matched entry into its displayable form, flattening its
// definition content from the top of the tree.
func Entry(e *model.Entry) model.Rendered {
	return model.Rendered{
		Term:        e.Term,
		Reading:     e.Reading,
		Tags:        e.Tags,
		Definitions: Flatten(e.Content, ""),
	}
}

// Matches renders every entry of every per-collection match group,
// preserving group and entry order.
func Matches(matches []model.Match) map[string][]model.Rendered {
	if len(matches) == 0 {
		return nil
	}
	out := make(map[string][]model.Rendered, len(matches))
	for _, m := range matches {
		rendered := make([]model.Rendered, 0, len(m.Entries))
		for _, e := range m.Entries {
			rendered = append(rendered, Entry(e))
		}
		out[m.Collection] = rendered
	}
	return out
}
