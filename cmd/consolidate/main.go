// Copyright 2025 Vividata Research
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Command consolidate merges a directory of per-page OCR markdown
// artifacts into a single document without running the service.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/Vividata-Research/Atlas-OCR/consolidate"
)

func main() {
	app := &cli.App{
		Name:      "consolidate",
		Usage:     "Merge per-page OCR markdown artifacts into one document",
		ArgsUsage: "<input-dir> [output-filename]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "staging-root",
				Aliases: []string{"s"},
				Usage:   "Directory to write consolidated output under",
				Value:   "output_consolidated",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Action: consolidateCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func consolidateCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("input directory is required")
	}
	inputDir := c.Args().Get(0)
	outputFilename := c.Args().Get(1)

	consolidator := consolidate.New(c.String("staging-root"))
	result, err := consolidator.Consolidate(inputDir, outputFilename)
	if err != nil {
		return err
	}

	fmt.Printf("Document: %s\n", result.DocumentPath)
	fmt.Printf("Pages:    %d\n", result.Pages)
	fmt.Printf("Images:   %d\n", result.Assets)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
