// Package tokenize wraps the kagome morphological tokenizer and exposes the
// base-form (lemma) capability the resolver falls back to.
package tokenize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token represents a token / morpheme produced by the tokenizer.
type Token struct {
	Text    string `json:"text"`
	Lemma   string `json:"lemma,omitempty"`
	POS     string `json:"pos,omitempty"`
	Reading string `json:"reading,omitempty"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// Tokenizer is a ready-to-use kagome tokenizer seeded from one of the
// bundled dictionaries.
type Tokenizer struct {
	kg *tokenizer.Tokenizer
}

// New initializes a tokenizer with the named kagome dictionary: "ipa" (the
// default) or "uni".
func New(dictName string) (*Tokenizer, error) {
	var d *dict.Dict
	switch dictName {
	case "", "ipa":
		d = ipa.Dict()
	case "uni":
		d = uni.Dict()
	default:
		return nil, fmt.Errorf("unknown tokenizer dictionary %q", dictName)
	}
	kg, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}
	return &Tokenizer{kg: kg}, nil
}

// Tokenize segments text into morphemes (normal mode).
func (t *Tokenizer) Tokenize(text string) []Token {
	if text == "" || t == nil || t.kg == nil {
		return nil
	}
	return convertKagomeTokens(t.kg.Tokenize(text))
}

// BaseForm reduces text to the dictionary form of its leading morpheme.
// An empty tokenization result falls back to returning text unchanged.
func (t *Tokenizer) BaseForm(text string) (string, error) {
	if t == nil || t.kg == nil {
		return "", errors.New("tokenizer is not initialized")
	}
	ktoks := t.kg.Tokenize(text)
	if len(ktoks) == 0 {
		return text, nil
	}
	lemma, ok := ktoks[0].BaseForm()
	if !ok || lemma == "" || lemma == "*" {
		return ktoks[0].Surface, nil
	}
	return lemma, nil
}

func convertKagomeTokens(ktoks []tokenizer.Token) []Token {
	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		lemma, _ := kt.BaseForm()
		if lemma == "" {
			lemma = kt.Surface
		}
		reading, okR := kt.Reading()
		if !okR {
			reading = ""
		}
		out = append(out, Token{
			Text:    kt.Surface,
			Lemma:   lemma,
			POS:     strings.Join(kt.POS(), ","),
			Reading: reading,
			Start:   kt.Start,
			End:     kt.End,
		})
	}
	return out
}
