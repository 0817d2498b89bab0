// Package dictionary builds and serves the in-memory term-bank index.
//
// The on-disk layout is one subdirectory per collection under a single root;
// each subdirectory holds .json files containing arrays of term tuples.
// Everything is loaded once at startup; after that the index is immutable
// and lookups are read-only.
package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"jiten/model"
)

// ErrNotReady is returned by lookups attempted before the index has finished
// building. It is distinct from an empty result so callers cannot mistake
// "not yet loaded" for "no matches".
var ErrNotReady = errors.New("dictionary index is not ready")

// Index maps term text and reading text to entry lists, per collection.
// Buckets preserve the order entries were read from their source files.
type Index struct {
	collections []string
	byTerm      map[string]map[string][]*model.Entry
	byReading   map[string]map[string][]*model.Entry
	count       int
	ready       bool
}

// Collection pairs a collection id with the raw tuples read for it, plus a
// source label used in per-record diagnostics.
type Collection struct {
	ID      string
	Source  string
	Entries []RawEntry
}

// Build normalizes every raw entry and indexes it under both its term and
// its reading, scoped to its collection. Records that are not tuple-shaped
// are reported and skipped; their siblings still load. The returned index
// is ready.
func Build(collections []Collection) *Index {
	idx := newIndex()
	for _, c := range collections {
		idx.addCollection(c.ID)
		for _, raw := range c.Entries {
			e, err := NormalizeEntry(raw, c.Source)
			if err != nil {
				slog.Warn("skipping malformed entry", "collection", c.ID, "err", err)
				continue
			}
			idx.add(c.ID, e)
		}
	}
	idx.ready = true
	return idx
}

// Load reads every collection under root and builds a ready index. A file
// that is not valid JSON is reported and skipped; an unreadable directory or
// file aborts the whole load. Non-directory entries under root are ignored. Files
// are read concurrently but merged in filename order, so bucket order stays
// deterministic.
func Load(root string) (*Index, error) {
	dirents, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read collections root %s: %w", root, err)
	}

	idx := newIndex()
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		id := d.Name()
		dir := filepath.Join(root, id)
		banks, err := loadCollectionFiles(dir)
		if err != nil {
			return nil, err
		}
		idx.addCollection(id)
		for _, b := range banks {
			for _, raw := range b.entries {
				e, err := NormalizeEntry(raw, b.path)
				if err != nil {
					slog.Warn("skipping malformed entry", "collection", id, "err", err)
					continue
				}
				idx.add(id, e)
			}
		}
		slog.Debug("collection loaded", "collection", id, "files", len(banks))
	}
	idx.ready = true
	return idx, nil
}

// bankFile holds the parsed tuples of one term-bank file.
type bankFile struct {
	path    string
	entries []RawEntry
}

// loadCollectionFiles reads every .json file in dir concurrently and returns
// the parsed banks in filename order. Parse failures skip the file; read
// failures abort.
func loadCollectionFiles(dir string) ([]bankFile, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", dir, err)
	}
	var paths []string
	for _, d := range dirents {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, d.Name()))
	}
	sort.Strings(paths)

	banks := make([]bankFile, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read term bank %s: %w", path, err)
			}
			entries, err := decodeBank(data)
			if err != nil {
				slog.Warn("skipping unparseable term bank", "path", path, "err", err)
				return nil
			}
			banks[i] = bankFile{path: path, entries: entries}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := banks[:0]
	for _, b := range banks {
		if b.path != "" {
			out = append(out, b)
		}
	}
	return out, nil
}

// decodeBank parses one term-bank file: normally a JSON array of tuples, but
// a file holding a single bare tuple is tolerated (recognized by its first
// element being a string rather than a nested tuple). Rows that are not
// tuple-shaped are kept as nil RawEntry values so NormalizeEntry can report
// them with file context.
func decodeBank(data []byte) ([]RawEntry, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == '"' {
		return []RawEntry{RawEntry(rows)}, nil
	}
	entries := make([]RawEntry, 0, len(rows))
	for _, row := range rows {
		var tuple RawEntry
		if err := json.Unmarshal(row, &tuple); err != nil {
			entries = append(entries, nil)
			continue
		}
		entries = append(entries, tuple)
	}
	return entries, nil
}

func newIndex() *Index {
	return &Index{
		byTerm:    make(map[string]map[string][]*model.Entry),
		byReading: make(map[string]map[string][]*model.Entry),
	}
}

func (x *Index) addCollection(id string) {
	if _, ok := x.byTerm[id]; ok {
		return
	}
	x.collections = append(x.collections, id)
	x.byTerm[id] = make(map[string][]*model.Entry)
	x.byReading[id] = make(map[string][]*model.Entry)
}

func (x *Index) add(collection string, e *model.Entry) {
	x.byTerm[collection][e.Term] = append(x.byTerm[collection][e.Term], e)
	x.byReading[collection][e.Reading] = append(x.byReading[collection][e.Reading], e)
	x.count++
}

// Ready reports whether the index has finished building.
func (x *Index) Ready() bool {
	return x.ready
}

// Collections returns the collection ids in load order.
func (x *Index) Collections() []string {
	return x.collections
}

// EntryCount returns the total number of indexed entries.
func (x *Index) EntryCount() int {
	return x.count
}

// Lookup returns the entries of one collection whose term or reading equals
// key: the union of the term bucket and the reading bucket, deduplicated by
// identity, in bucket order. An absent key yields an empty result, not an
// error.
func (x *Index) Lookup(collection, key string) ([]*model.Entry, error) {
	if !x.ready {
		return nil, ErrNotReady
	}
	terms := x.byTerm[collection][key]
	readings := x.byReading[collection][key]
	if len(readings) == 0 {
		return terms, nil
	}
	seen := make(map[*model.Entry]struct{}, len(terms))
	out := make([]*model.Entry, 0, len(terms)+len(readings))
	for _, e := range terms {
		seen[e] = struct{}{}
		out = append(out, e)
	}
	for _, e := range readings {
		if _, dup := seen[e]; !dup {
			out = append(out, e)
		}
	}
	return out, nil
}

// LookupAll runs Lookup against every collection and groups the results by
// collection, in load order. Collections with no matches are omitted.
func (x *Index) LookupAll(key string) ([]model.Match, error) {
	if !x.ready {
		return nil, ErrNotReady
	}
	var matches []model.Match
	for _, id := range x.collections {
		entries, err := x.Lookup(id, key)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			matches = append(matches, model.Match{Collection: id, Entries: entries})
		}
	}
	return matches, nil
}
