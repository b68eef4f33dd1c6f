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
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Vividata-Research/Atlas-OCR/core"
	"github.com/Vividata-Research/Atlas-OCR/inference"
)

// Header names for the raw-upload override layer.
const (
	HeaderModel       = "X-Ocr-Model"
	HeaderPrompt      = "X-Ocr-Prompt"
	HeaderDPI         = "X-Ocr-Dpi"
	HeaderThreads     = "X-Ocr-Threads"
	HeaderTemperature = "X-Ocr-Temperature"
	HeaderTopP        = "X-Ocr-Top-P"
	HeaderMaxTokens   = "X-Ocr-Max-Tokens"
)

// submissionEnvelope is the JSON request body for POST /invocations.
// Override fields accept either strings or JSON numbers; values that do
// not coerce to the option's type are ignored.
type submissionEnvelope struct {
	FileData    string `json:"file_data"`
	Model       any    `json:"model,omitempty"`
	Prompt      any    `json:"prompt,omitempty"`
	DPI         any    `json:"dpi,omitempty"`
	Threads     any    `json:"num_threads,omitempty"`
	Temperature any    `json:"temperature,omitempty"`
	TopP        any    `json:"top_p,omitempty"`
	MaxTokens   any    `json:"max_tokens,omitempty"`
}

func (e submissionEnvelope) overrides() inference.Overrides {
	return inference.Overrides{
		Model:       coerce(e.Model),
		Prompt:      coerce(e.Prompt),
		DPI:         coerce(e.DPI),
		Threads:     coerce(e.Threads),
		Temperature: coerce(e.Temperature),
		TopP:        coerce(e.TopP),
		MaxTokens:   coerce(e.MaxTokens),
	}
}

// coerce renders a decoded JSON value as raw override text. Types the
// resolver cannot use come back nil.
func coerce(v any) *string {
	switch t := v.(type) {
	case string:
		return &t
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	default:
		return nil
	}
}

func headerOverrides(c fiber.Ctx) inference.Overrides {
	get := func(name string) *string {
		if v := c.Get(name); v != "" {
			return &v
		}
		return nil
	}
	return inference.Overrides{
		Model:       get(HeaderModel),
		Prompt:      get(HeaderPrompt),
		DPI:         get(HeaderDPI),
		Threads:     get(HeaderThreads),
		Temperature: get(HeaderTemperature),
		TopP:        get(HeaderTopP),
		MaxTokens:   get(HeaderMaxTokens),
	}
}

// completionResponse is the success envelope for POST /invocations.
type completionResponse struct {
	Object       string            `json:"object"`
	ID           string            `json:"id"`
	Model        string            `json:"model"`
	Created      int64             `json:"created"`
	Result       []core.PageResult `json:"result"`
	DocumentPath string            `json:"document_path"`
	DocumentDir  string            `json:"document_dir"`
}

// documentResponse is the body for GET /documents/:id.
type documentResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Pages        int       `json:"pages"`
	Assets       int       `json:"assets"`
	DocumentPath string    `json:"document_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	PublishedAt  time.Time `json:"published_at,omitzero"`
}
