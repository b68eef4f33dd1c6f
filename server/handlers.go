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


package server

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Vividata-Research/Atlas-OCR/core"
	"github.com/Vividata-Research/Atlas-OCR/inference"
	"github.com/Vividata-Research/Atlas-OCR/pipeline"
	"github.com/Vividata-Research/Atlas-OCR/storage"
)

func (s *Server) handlePing(c fiber.Ctx) error {
	if err := s.prober.Ping(context.Background()); err != nil {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	if err := s.prober.Ping(context.Background()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"backend": "ready",
	})
}

// handleInvocations accepts either a JSON envelope carrying a base64
// payload plus override fields, or a raw document body with overrides
// taken from X-Ocr-* headers. Header overrides win in both modes.
func (s *Server) handleInvocations(c fiber.Ctx) error {
	var (
		payload   []byte
		bodyLayer inference.Overrides
	)

	switch contentType(c) {
	case fiber.MIMEApplicationJSON:
		var env submissionEnvelope
		if err := c.Bind().JSON(&env); err != nil {
			return clientError(c, "invalid JSON body")
		}
		if env.FileData == "" {
			return clientError(c, "missing 'file_data' field")
		}
		decoded, err := base64.StdEncoding.DecodeString(env.FileData)
		if err != nil {
			return clientError(c, "'file_data' is not valid base64")
		}
		payload = decoded
		bodyLayer = env.overrides()
	default:
		// Raw upload. The body buffer is owned by fasthttp and reused
		// across requests, so it has to be copied before the pipeline
		// takes over.
		payload = append([]byte(nil), c.Body()...)
	}

	opts := inference.Resolve(s.envLayer, bodyLayer, headerOverrides(c))

	result, err := s.pipeline.Submit(context.Background(), pipeline.Submission{
		Payload: payload,
		Options: opts,
	})
	if err != nil {
		return s.submissionError(c, err)
	}

	return c.JSON(completionResponse{
		Object:       "ocr.completion",
		ID:           result.ID,
		Model:        opts.Model,
		Created:      time.Now().Unix(),
		Result:       result.Pages,
		DocumentPath: result.DocumentPath,
		DocumentDir:  result.DocumentDir,
	})
}

func (s *Server) handleGetDocument(c fiber.Ctx) error {
	id := c.Params("id")
	record, err := s.documents.Get(context.Background(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "document not found",
			})
		}
		s.logger.Error("registry lookup failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "registry lookup failed",
		})
	}
	return c.JSON(documentResponse{
		ID:           record.ID,
		Status:       record.Status.String(),
		Pages:        record.Pages,
		Assets:       record.Assets,
		DocumentPath: record.DocumentPath,
		CreatedAt:    record.CreatedAt,
		PublishedAt:  record.PublishedAt,
	})
}

// submissionError maps pipeline failures onto status codes: bad input is
// the caller's fault, an unreachable backend is a gateway condition, and
// everything else is an internal failure surfaced verbatim.
func (s *Server) submissionError(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrClientInput):
		code = fiber.StatusBadRequest
	case errors.Is(err, core.ErrUpstreamUnavailable):
		code = fiber.StatusServiceUnavailable
	}
	if code == fiber.StatusInternalServerError {
		s.logger.Error("submission failed", "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func clientError(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func contentType(c fiber.Ctx) string {
	ct := c.Get(fiber.HeaderContentType)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
