// Package lookup resolves a query against the dictionary index, falling
// back to the lemma form when a collection has no exact match.
package lookup

import (
	"fmt"

	"jiten/dictionary"
	"jiten/model"
)

// Lemmatizer reduces inflected text to its dictionary (base) form.
// tokenize.Tokenizer satisfies this.
type Lemmatizer interface {
	BaseForm(text string) (string, error)
}

// Resolver answers queries from an immutable index plus a lemmatizer.
type Resolver struct {
	idx *dictionary.Index
	lem Lemmatizer
}

// New returns a resolver over idx using lem for the fallback pass.
func New(idx *dictionary.Index, lem Lemmatizer) *Resolver {
	return &Resolver{idx: idx, lem: lem}
}

// Resolve evaluates query against every collection independently. A
// collection's result is its exact term/reading matches; only when a
// collection has none is the query's lemma computed (at most once, shared
// across collections) and the same equality test re-run with it. An exact
// match in one collection never suppresses the fallback in another.
// Collections with no matches are omitted. A lemmatizer failure aborts the
// remaining lemma passes and is returned alongside whatever exact matches
// were already gathered.
func (r *Resolver) Resolve(query string) ([]model.Match, error) {
	if !r.idx.Ready() {
		return nil, dictionary.ErrNotReady
	}

	var (
		lemma     string
		lemmaErr  error
		lemmaDone bool
	)
	baseForm := func() (string, error) {
		if lemmaDone {
			return lemma, lemmaErr
		}
		lemmaDone = true
		lemma, lemmaErr = r.lem.BaseForm(query)
		if lemmaErr != nil {
			lemmaErr = fmt.Errorf("base form of %q: %w", query, lemmaErr)
		} else if lemma == "" {
			lemma = query
		}
		return lemma, lemmaErr
	}

	var (
		matches []model.Match
		tokErr  error
	)
	for _, id := range r.idx.Collections() {
		entries, err := r.idx.Lookup(id, query)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 && tokErr == nil {
			base, err := baseForm()
			switch {
			case err != nil:
				tokErr = err
			case base != query:
				entries, err = r.idx.Lookup(id, base)
				if err != nil {
					return nil, err
				}
			}
		}
		if len(entries) > 0 {
			matches = append(matches, model.Match{Collection: id, Entries: entries})
		}
	}
	return matches, tokErr
}
