package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"jiten/model"
)

// RawEntry is one fixed-position term-bank tuple:
// [term, reading, tagString, rules, score, content, sequence, termTags].
// Trailing positions may be absent.
type RawEntry []json.RawMessage

// NormalizeEntry converts one raw tuple into a canonical entry. src names
// the file the tuple came from and is used only for error context. A tuple
// too short to contain a term is an error; malformed or absent optional
// positions degrade to ""/0 instead.
func NormalizeEntry(raw RawEntry, src string) (*model.Entry, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: entry tuple has no term", src)
	}
	e := &model.Entry{Term: decodeString(raw[0])}
	if len(raw) > 1 {
		e.Reading = decodeString(raw[1])
	}
	if len(raw) > 2 {
		e.Tags = splitTags(decodeString(raw[2]))
	}
	if len(raw) > 3 {
		e.Rules = decodeString(raw[3])
	}
	if len(raw) > 4 {
		e.Score = decodeNumber(raw[4])
	}
	if len(raw) > 5 {
		e.Content = parseContent(raw[5])
	}
	if len(raw) > 6 {
		e.Sequence = decodeNumber(raw[6])
	}
	if len(raw) > 7 {
		e.TermTags = decodeString(raw[7])
	}
	return e, nil
}

// splitTags splits a tag string on single spaces and drops empty segments,
// so leading, trailing and doubled spaces are harmless.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, " ") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func decodeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func decodeNumber(raw json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return int(n)
}

// parseContent decodes a structured-content value into its tagged variant.
// Shape is inspected once here; the flattener dispatches on the variant tag
// only. Strings become Text, arrays become List, objects become Node (their
// sole payload is their own "content" field). Stray numbers and booleans are
// coerced to their string form; null becomes an empty Text.
func parseContent(raw json.RawMessage) model.Content {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return model.Content{Kind: model.Text}
	}
	switch raw[0] {
	case '"':
		return model.Content{Kind: model.Text, Str: decodeString(raw)}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return model.Content{Kind: model.Text}
		}
		list := model.Content{Kind: model.List, Items: make([]model.Content, 0, len(items))}
		for _, item := range items {
			list.Items = append(list.Items, parseContent(item))
		}
		return list
	case '{':
		var obj struct {
			Content json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil || len(obj.Content) == 0 || string(obj.Content) == "null" {
			return model.Content{Kind: model.Node}
		}
		child := parseContent(obj.Content)
		return model.Content{Kind: model.Node, Child: &child}
	default:
		var v any
		if err := json.Unmarshal(raw, &v); err != nil || v == nil {
			return model.Content{Kind: model.Text}
		}
		return model.Content{Kind: model.Text, Str: fmt.Sprint(v)}
	}
}
