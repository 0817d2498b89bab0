package tokenize

import "testing"

func TestNewUnknownDict(t *testing.T) {
	if _, err := New("edict"); err == nil {
		t.Fatal("expected error for unknown dictionary name")
	}
}

func TestBaseFormInflectedVerb(t *testing.T) {
	tok, err := New("ipa")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := tok.BaseForm("食べた")
	if err != nil {
		t.Fatalf("BaseForm: %v", err)
	}
	if got != "食べる" {
		t.Errorf("BaseForm(食べた) = %q, want 食べる", got)
	}
}

func TestBaseFormDictionaryForm(t *testing.T) {
	tok, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := tok.BaseForm("猫")
	if err != nil {
		t.Fatalf("BaseForm: %v", err)
	}
	if got != "猫" {
		t.Errorf("BaseForm(猫) = %q, want 猫", got)
	}
}

func TestBaseFormEmptyInput(t *testing.T) {
	tok, err := New("ipa")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := tok.BaseForm("")
	if err != nil {
		t.Fatalf("BaseForm: %v", err)
	}
	if got != "" {
		t.Errorf("BaseForm(\"\") = %q, want the input unchanged", got)
	}
}

func TestBaseFormUninitialized(t *testing.T) {
	var tok *Tokenizer
	if _, err := tok.BaseForm("猫"); err == nil {
		t.Fatal("expected error from nil tokenizer")
	}
}

func TestTokenize(t *testing.T) {
	tok, err := New("ipa")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	toks := tok.Tokenize("猫が好き")
	if len(toks) < 3 {
		t.Fatalf("Tokenize produced %d tokens, want >= 3", len(toks))
	}
	if toks[0].Text != "猫" {
		t.Errorf("first surface = %q, want 猫", toks[0].Text)
	}
	if toks[0].Start != 0 {
		t.Errorf("first token start = %d, want 0", toks[0].Start)
	}
	if tok.Tokenize("") != nil {
		t.Error("Tokenize(\"\") should be nil")
	}
}
