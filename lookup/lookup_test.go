package lookup

import (
	"encoding/json"
	"errors"
	"testing"

	"jiten/dictionary"
)

// fakeLemma is a scripted Lemmatizer that counts invocations.
type fakeLemma struct {
	base  map[string]string
	err   error
	calls int
}

func (f *fakeLemma) BaseForm(text string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.base[text], nil
}

func rawTuple(t *testing.T, fields ...any) dictionary.RawEntry {
	t.Helper()
	raw := make(dictionary.RawEntry, 0, len(fields))
	for _, f := range fields {
		b, err := json.Marshal(f)
		if err != nil {
			t.Fatal(err)
		}
		raw = append(raw, b)
	}
	return raw
}

func testIndex(t *testing.T) *dictionary.Index {
	t.Helper()
	return dictionary.Build([]dictionary.Collection{
		{
			ID:     "jmdict",
			Source: "jmdict/term_bank_1.json",
			Entries: []dictionary.RawEntry{
				rawTuple(t, "猫", "ねこ", "n", "", 0, "cat", 1, ""),
				rawTuple(t, "食べる", "たべる", "v1", "", 0, "to eat", 2, ""),
			},
		},
		{
			ID:     "slang",
			Source: "slang/term_bank_1.json",
			Entries: []dictionary.RawEntry{
				rawTuple(t, "食べる", "たべる", "", "", 0, "to scarf down", 3, ""),
			},
		},
	})
}

func TestResolveExactMatchSkipsLemma(t *testing.T) {
	lem := &fakeLemma{}
	r := New(testIndex(t), lem)

	matches, err := r.Resolve("猫")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 1 || matches[0].Collection != "jmdict" {
		t.Fatalf("matches = %v", matches)
	}
	e := matches[0].Entries[0]
	if e.Term != "猫" || e.Reading != "ねこ" {
		t.Errorf("entry = %q [%q]", e.Term, e.Reading)
	}
	if lem.calls != 0 {
		t.Errorf("lemmatizer invoked %d times for an exact-only query", lem.calls)
	}
}

func TestResolveByReading(t *testing.T) {
	r := New(testIndex(t), &fakeLemma{})
	matches, err := r.Resolve("ねこ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 1 || matches[0].Entries[0].Term != "猫" {
		t.Errorf("reading query should hit the same entry, got %v", matches)
	}
}

func TestResolveLemmaFallback(t *testing.T) {
	lem := &fakeLemma{base: map[string]string{"食べた": "食べる"}}
	r := New(testIndex(t), lem)

	matches, err := r.Resolve("食べた")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matched %d collections, want 2 (both via lemma)", len(matches))
	}
	if matches[0].Collection != "jmdict" || matches[1].Collection != "slang" {
		t.Errorf("collection order = %v, %v", matches[0].Collection, matches[1].Collection)
	}
	if lem.calls != 1 {
		t.Errorf("lemma computed %d times, want 1 (memoized across collections)", lem.calls)
	}
}

func TestResolvePerCollectionIndependence(t *testing.T) {
	// Exact match in collection a must not suppress b's lemma pass.
	idx := dictionary.Build([]dictionary.Collection{
		{ID: "a", Source: "a/b.json", Entries: []dictionary.RawEntry{
			rawTuple(t, "走った", "はしった", "", "", 0, "ran (fixed form)", 1, ""),
		}},
		{ID: "b", Source: "b/b.json", Entries: []dictionary.RawEntry{
			rawTuple(t, "走る", "はしる", "", "", 0, "to run", 2, ""),
		}},
	})
	lem := &fakeLemma{base: map[string]string{"走った": "走る"}}
	r := New(idx, lem)

	matches, err := r.Resolve("走った")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matched %d collections, want 2 (exact in a, lemma in b)", len(matches))
	}
	if matches[0].Entries[0].Term != "走った" || matches[1].Entries[0].Term != "走る" {
		t.Errorf("matches = %v", matches)
	}
	if lem.calls != 1 {
		t.Errorf("lemma computed %d times, want 1", lem.calls)
	}
}

func TestResolveNoMatchesAnywhere(t *testing.T) {
	lem := &fakeLemma{base: map[string]string{"犬": "犬"}}
	r := New(testIndex(t), lem)

	matches, err := r.Resolve("犬")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
	if lem.calls != 1 {
		t.Errorf("lemma computed %d times, want 1", lem.calls)
	}
}

func TestResolveEmptyLemmaFallsBackToQuery(t *testing.T) {
	// BaseForm returning "" must behave as if it returned the query.
	lem := &fakeLemma{}
	r := New(testIndex(t), lem)

	matches, err := r.Resolve("存在しない")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
}

func TestResolveTokenizerErrorKeepsExactResults(t *testing.T) {
	idx := dictionary.Build([]dictionary.Collection{
		{ID: "a", Source: "a/b.json", Entries: []dictionary.RawEntry{
			rawTuple(t, "猫", "ねこ", "", "", 0, "cat", 1, ""),
		}},
		{ID: "b", Source: "b/b.json", Entries: []dictionary.RawEntry{
			rawTuple(t, "犬", "いぬ", "", "", 0, "dog", 2, ""),
		}},
		{ID: "c", Source: "c/b.json", Entries: []dictionary.RawEntry{
			rawTuple(t, "猫", "ねこ", "", "", 0, "cat (again)", 3, ""),
		}},
	})
	tokFail := errors.New("tokenizer exploded")
	lem := &fakeLemma{err: tokFail}
	r := New(idx, lem)

	matches, err := r.Resolve("猫")
	if !errors.Is(err, tokFail) {
		t.Fatalf("err = %v, want wrapped tokenizer error", err)
	}
	// a and c matched exactly; b triggered the failing lemma pass.
	if len(matches) != 2 || matches[0].Collection != "a" || matches[1].Collection != "c" {
		t.Errorf("exact matches lost on tokenizer error: %v", matches)
	}
	if lem.calls != 1 {
		t.Errorf("failed lemma retried %d times, want 1", lem.calls)
	}
}

func TestResolveNotReady(t *testing.T) {
	r := New(&dictionary.Index{}, &fakeLemma{})
	if _, err := r.Resolve("猫"); !errors.Is(err, dictionary.ErrNotReady) {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
}
