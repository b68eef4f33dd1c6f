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


// Package server exposes the document submission pipeline over HTTP.
//
// Routes: POST /invocations (submit a document), GET /ping and GET /health
// (backend liveness), GET /documents/:id (registry lookup).
package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Vividata-Research/Atlas-OCR/inference"
	"github.com/Vividata-Research/Atlas-OCR/pipeline"
	"github.com/Vividata-Research/Atlas-OCR/storage"
)

const defaultBodyLimit = 64 * 1024 * 1024

// Server wires the processing pipeline, the backend prober and the
// document registry into a Fiber application.
type Server struct {
	app       *fiber.App
	pipeline  *pipeline.Pipeline
	prober    *inference.Prober
	documents storage.DocumentRepository
	envLayer  inference.Overrides
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithEnvOverrides sets the environment layer of the options resolution
// chain, captured once at process start.
func WithEnvOverrides(layer inference.Overrides) Option {
	return func(s *Server) {
		s.envLayer = layer
	}
}

// New creates a Server around the given collaborators.
func New(
	p *pipeline.Pipeline,
	prober *inference.Prober,
	documents storage.DocumentRepository,
	opts ...Option,
) *Server {
	s := &Server{
		pipeline:  p,
		prober:    prober,
		documents: documents,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	app := fiber.New(fiber.Config{
		AppName:   "Atlas-OCR",
		BodyLimit: defaultBodyLimit,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/ping", s.handlePing)
	app.Get("/health", s.handleHealth)
	app.Post("/invocations", s.handleInvocations)
	app.Get("/documents/:id", s.handleGetDocument)

	s.app = app
	return s
}

// App returns the underlying Fiber application, used by tests and by the
// binary's graceful shutdown.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until the application is shut down.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.app.Listen(addr)
}
