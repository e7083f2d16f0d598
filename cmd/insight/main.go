// Command insight builds a weekly couple report from a JSON export of both
// diaries, without a database, and prints the report and its narrative
// prompt.
//
// Input format:
//
//	{
//	  "end": "2024-01-07",
//	  "emotion": "happiness",
//	  "me": {"user_id": "...", "couple_id": "...", "attachment_style": "anxious"},
//	  "partner": {"user_id": "...", "couple_id": "...", "attachment_style": "secure"},
//	  "my_entries": [...],
//	  "partner_entries": [...]
//	}
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/duetdiary/duet-api/internal/platform/logger"
)

func main() {
	in := flag.String("in", "-", "input JSON file, - for stdin")
	rulesPath := flag.String("rules", "", "optional rule file (YAML, JSON or TOML)")
	offset := flag.Int("offset", 9, "local UTC offset in hours")
	history := flag.Int("history", 4, "prior weeks used for the reliability baseline")
	promptOnly := flag.Bool("prompt", false, "print only the narrative prompt")
	verbose := flag.Bool("v", false, "log debug output to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := logger.New(os.Stderr, level)

	r, err := openInput(*in)
	if err != nil {
		fail(err)
	}
	defer r.Close()

	var export Export
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		fail(fmt.Errorf("failed to decode %s: %w", *in, err))
	}

	out, err := Run(context.Background(), export, Options{
		RulesPath:    *rulesPath,
		OffsetHours:  *offset,
		HistoryWeeks: *history,
	}, log)
	if err != nil {
		fail(err)
	}

	if *promptOnly {
		fmt.Println(out.Prompt)
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		fail(err)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "insight: %v\n", err)
	os.Exit(1)
}
