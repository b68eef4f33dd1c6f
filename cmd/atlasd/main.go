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


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Vividata-Research/Atlas-OCR/core"
	"github.com/Vividata-Research/Atlas-OCR/inference"
	"github.com/Vividata-Research/Atlas-OCR/pipeline"
	"github.com/Vividata-Research/Atlas-OCR/server"
	"github.com/Vividata-Research/Atlas-OCR/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "atlasd",
		Usage: "OCR document submission service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP submission service",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "backend",
						Usage: "Inference backend base URL",
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:    "output-root",
						Aliases: []string{"o"},
						Usage:   "Root directory for staged, working and published documents",
						Value:   "output",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB registry directory (empty for in-memory)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent submissions (0 uses the CPU count)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	logger := slog.Default()

	envLayer := inference.EnvOverrides(os.LookupEnv)
	if backend := c.String("backend"); backend != "" {
		envLayer.Backend = &backend
	}
	backendURL := inference.Resolve(envLayer).BackendURL

	layout := core.Layout{Root: c.String("output-root")}
	if err := os.MkdirAll(layout.Root, 0755); err != nil {
		return fmt.Errorf("failed to create output root: %w", err)
	}

	dbPath := c.String("db")
	storageBackend, err := badger.OpenBackend(dbPath, dbPath == "")
	if err != nil {
		return fmt.Errorf("failed to open registry database: %w", err)
	}
	defer storageBackend.Close()
	documents := badger.NewDocumentRepository(storageBackend)

	invoker := inference.NewClient(inference.WithClientLogger(logger))

	proberOpts := []inference.ProberOption{}
	if raw := os.Getenv("HEALTH_CHECK_TIMEOUT"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			proberOpts = append(proberOpts, inference.WithProbeTimeout(time.Duration(seconds)*time.Second))
		} else {
			logger.Warn("invalid HEALTH_CHECK_TIMEOUT, using default", "value", raw)
		}
	}
	prober := inference.NewProber(backendURL, proberOpts...)

	pipelineOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	if workers := c.Int("workers"); workers > 0 {
		pipelineOpts = append(pipelineOpts, pipeline.WithPoolSize(workers))
	}
	p, err := pipeline.New(layout, invoker, documents, pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Release()

	srv := server.New(p, prober, documents,
		server.WithLogger(logger),
		server.WithEnvOverrides(envLayer),
	)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("shutting down")
		if err := srv.App().Shutdown(); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("starting service",
		"listen", c.String("listen"),
		"backend", backendURL,
		"output_root", layout.Root)
	return srv.Listen(c.String("listen"))
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
