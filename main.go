// Command jiten is an interactive lookup tool for Yomichan-format term-bank
// collections. It loads every collection under the configured root into an
// in-memory index once at startup, then answers queries from stdin: exact
// term/reading matches first, with a kagome base-form fallback per
// collection when a direct match is missing.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"jiten/config"
	"jiten/dictionary"
	"jiten/logger"
	"jiten/lookup"
	"jiten/model"
	"jiten/render"
	"jiten/tokenize"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	dictDir := flag.String("dicts", "", "override the dictionary collections root")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *dictDir != "" {
		cfg.DictDir = *dictDir
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	idx, err := dictionary.Load(cfg.DictDir)
	if err != nil {
		slog.Error("failed to load dictionaries", "err", err)
		os.Exit(1)
	}
	slog.Info("dictionaries loaded",
		"collections", len(idx.Collections()), "entries", idx.EntryCount())

	tok, err := tokenize.New(cfg.Tokenizer.Dict)
	if err != nil {
		slog.Error("failed to init tokenizer", "err", err)
		os.Exit(1)
	}

	if cfg.DumpDir != "" {
		if err := logger.InitDumps(cfg.DumpDir); err != nil {
			slog.Error("failed to init dump directory", "dir", cfg.DumpDir, "err", err)
			os.Exit(1)
		}
	}

	res := lookup.New(idx, tok)
	runLoop(res, cfg.DumpDir)
}

// runLoop reads queries from stdin until EOF or an exit command.
func runLoop(res *lookup.Resolver, dumpDir string) {
	sc := bufio.NewScanner(os.Stdin)
	queryNum := 0
	fmt.Print("> ")
	for sc.Scan() {
		query := strings.TrimSpace(sc.Text())
		if query == "" {
			fmt.Print("> ")
			continue
		}
		if isExit(query) {
			return
		}
		queryNum++

		matches, err := res.Resolve(query)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lookup error:", err)
		}
		printMatches(query, matches)
		if dumpDir != "" && len(matches) > 0 {
			name := fmt.Sprintf("query_%03d", queryNum)
			if err := logger.DumpJSON(dumpDir, name, render.Matches(matches)); err != nil {
				slog.Warn("failed to write query dump", "name", name, "err", err)
			}
		}
		fmt.Print("> ")
	}
	if err := sc.Err(); err != nil {
		slog.Error("stdin read failed", "err", err)
	}
}

func isExit(s string) bool {
	switch strings.ToLower(s) {
	case "exit", "quit", "q":
		return true
	}
	return false
}

func printMatches(query string, matches []model.Match) {
	if len(matches) == 0 {
		fmt.Printf("no results for %q\n", query)
		return
	}
	for _, m := range matches {
		fmt.Printf("--- %s ---\n", m.Collection)
		for _, e := range m.Entries {
			r := render.Entry(e)
			head := r.Term
			if r.Reading != "" && r.Reading != r.Term {
				head += " [" + r.Reading + "]"
			}
			if len(r.Tags) > 0 {
				head += " (" + strings.Join(r.Tags, " ") + ")"
			}
			fmt.Println(head)
			for _, line := range r.Definitions {
				fmt.Println("  " + line)
			}
		}
	}
}
