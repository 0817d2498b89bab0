// Command mkdict converts a JMdict XML file into a Yomichan-style term-bank
// collection that the lookup engine can load: a directory of
// term_bank_N.json files holding fixed-position entry tuples.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	jmdict "github.com/yomidevs/jmdict-go"

	"jiten/logger"
)

// batchSize is the number of tuples per term_bank file.
const batchSize = 10000

func main() {
	in := flag.String("in", "JMdict_e", "path to JMdict XML file")
	out := flag.String("out", "dicts/jmdict", "collection directory to write")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()
	logger.Setup(*logLevel, "text")

	f, err := os.Open(*in)
	if err != nil {
		slog.Error("open JMdict", "err", err)
		os.Exit(1)
	}
	defer f.Close()

	dict, _, err := jmdict.LoadJmdict(f)
	if err != nil {
		slog.Error("parse JMdict", "err", err)
		os.Exit(1)
	}
	slog.Info("JMdict parsed", "entries", len(dict.Entries))

	tuples := make([][]any, 0, len(dict.Entries))
	for _, entry := range dict.Entries {
		tuples = append(tuples, entryTuples(entry)...)
	}

	if err := writeBanks(*out, tuples); err != nil {
		slog.Error("write term banks", "err", err)
		os.Exit(1)
	}
	slog.Info("collection written", "dir", *out, "terms", len(tuples))
}

// entryTuples expands one JMdict entry into term tuples: one per
// kanji-reading pair, or one per reading for kana-only entries. Tuple
// layout: [term, reading, tagString, rules, score, content, sequence,
// termTags].
func entryTuples(entry jmdict.JmdictEntry) [][]any {
	content := make([]string, 0, len(entry.Sense))
	tagSet := make(map[string]bool)
	var tags []string
	for _, s := range entry.Sense {
		glosses := make([]string, 0, len(s.Glossary))
		for _, g := range s.Glossary {
			glosses = append(glosses, g.Content)
		}
		if len(glosses) > 0 {
			content = append(content, strings.Join(glosses, "; "))
		}
		for _, p := range s.PartsOfSpeech {
			if !tagSet[p] {
				tagSet[p] = true
				tags = append(tags, p)
			}
		}
	}
	tagString := strings.Join(tags, " ")

	tuple := func(term, reading string) []any {
		return []any{term, reading, tagString, "", 0, content, entry.Sequence, ""}
	}

	var out [][]any
	if len(entry.Kanji) == 0 {
		for _, r := range entry.Readings {
			out = append(out, tuple(r.Reading, r.Reading))
		}
		return out
	}
	for _, k := range entry.Kanji {
		for _, r := range entry.Readings {
			out = append(out, tuple(k.Expression, r.Reading))
		}
	}
	return out
}

func writeBanks(dir string, tuples [][]any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i := 0; i*batchSize < len(tuples); i++ {
		hi := (i + 1) * batchSize
		if hi > len(tuples) {
			hi = len(tuples)
		}
		batch := tuples[i*batchSize : hi]
		data, err := json.Marshal(batch)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("term_bank_%d.json", i+1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
