// Command contour reconstructs a document outline from a PDF and writes
// it as JSON to stdout or a file.
//
// Usage:
//
//	contour [-o outline.json] [-config contour.yaml] [-workers N] [-v] input.pdf
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/contour"
)

func main() {
	os.Exit(run())
}

func run() int {
	output := flag.String("o", "", "Write the outline JSON to this path instead of stdout")
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	workers := flag.Int("workers", 1, "Number of concurrent page workers")
	verbose := flag.Bool("v", false, "Enable informational logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: contour [-o outline.json] [-config contour.yaml] [-workers N] [-v] <input.pdf>")
		return 1
	}
	input := flag.Arg(0)

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	extractor := contour.Open(input)
	if *configPath != "" {
		config, err := contour.LoadConfig(*configPath)
		if err != nil {
			logger.Error("loading configuration failed", "error", err)
			return 2
		}
		extractor = extractor.WithConfig(config)
	}
	if *workers > 1 {
		extractor = extractor.Workers(*workers)
	}

	o, warnings, err := extractor.Outline()
	if err != nil {
		logger.Error("outline extraction failed", "file", input, "error", err)
		return 2
	}
	for _, w := range warnings {
		logger.Warn(w.String())
	}
	logger.Info("outline extracted", "file", input, "headings", len(o.Outline))

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Error("creating output file failed", "error", err)
			return 2
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(o); err != nil {
		logger.Error("encoding outline failed", "error", err)
		return 2
	}
	return 0
}
