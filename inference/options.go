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


package inference

import (
	"strconv"
	"strings"
)

// Options is the fully resolved configuration for one inference call.
// Every field has a built-in default; later layers (environment, request
// body, request headers) only override a field when the supplied value
// coerces to the field's type.
type Options struct {
	// BackendURL is the base address of the inference backend.
	BackendURL string

	// Model is the model identifier reported to the backend.
	Model string

	// Prompt selects the backend prompt template.
	Prompt string

	// DPI is the render resolution for rasterized pages.
	DPI int

	// Threads is the backend-side parallelism for one document.
	Threads int

	// Temperature is the sampling temperature.
	Temperature float64

	// TopP is the nucleus sampling cutoff.
	TopP float64

	// MaxTokens caps the completion length per page.
	MaxTokens int
}

// DefaultOptions returns the built-in defaults, the lowest layer of the
// resolution chain.
func DefaultOptions() Options {
	return Options{
		BackendURL:  "http://127.0.0.1:8081",
		Model:       "model",
		Prompt:      "prompt_layout_all_en",
		DPI:         120,
		Threads:     1,
		Temperature: 0.1,
		TopP:        0.9,
		MaxTokens:   4096,
	}
}

// Overrides is one layer of optional overrides. Nil (or empty string)
// fields leave the previous layer's value in place. Numeric fields carry
// raw text: a value that does not parse is discarded and the previous
// layer's value kept.
type Overrides struct {
	Backend     *string
	Model       *string
	Prompt      *string
	DPI         *string
	Threads     *string
	Temperature *string
	TopP        *string
	MaxTokens   *string
}

// Environment variable names read into the environment layer.
const (
	EnvBackend     = "ATLAS_OCR_BACKEND"
	EnvModel       = "ATLAS_OCR_MODEL"
	EnvPrompt      = "ATLAS_OCR_PROMPT"
	EnvDPI         = "ATLAS_OCR_DPI"
	EnvThreads     = "ATLAS_OCR_THREADS"
	EnvTemperature = "ATLAS_OCR_TEMPERATURE"
	EnvTopP        = "ATLAS_OCR_TOP_P"
	EnvMaxTokens   = "ATLAS_OCR_MAX_TOKENS"
)

// EnvOverrides builds an override layer from an environment snapshot.
// lookup follows the os.LookupEnv contract; passing os.LookupEnv reads
// the process environment.
func EnvOverrides(lookup func(string) (string, bool)) Overrides {
	get := func(key string) *string {
		if v, ok := lookup(key); ok {
			return &v
		}
		return nil
	}
	return Overrides{
		Backend:     get(EnvBackend),
		Model:       get(EnvModel),
		Prompt:      get(EnvPrompt),
		DPI:         get(EnvDPI),
		Threads:     get(EnvThreads),
		Temperature: get(EnvTemperature),
		TopP:        get(EnvTopP),
		MaxTokens:   get(EnvMaxTokens),
	}
}

// Resolve merges the built-in defaults with the given layers, applied in
// order, later layers winning. The conventional order is environment,
// request body, request headers.
func Resolve(layers ...Overrides) Options {
	opts := DefaultOptions()
	for _, layer := range layers {
		opts = opts.apply(layer)
	}
	return opts
}

func (o Options) apply(layer Overrides) Options {
	o.BackendURL = overrideString(o.BackendURL, layer.Backend)
	o.Model = overrideString(o.Model, layer.Model)
	o.Prompt = overrideString(o.Prompt, layer.Prompt)
	o.DPI = overrideInt(o.DPI, layer.DPI)
	o.Threads = overrideInt(o.Threads, layer.Threads)
	o.Temperature = overrideFloat(o.Temperature, layer.Temperature)
	o.TopP = overrideFloat(o.TopP, layer.TopP)
	o.MaxTokens = overrideInt(o.MaxTokens, layer.MaxTokens)
	return o
}

func overrideString(prev string, raw *string) string {
	if raw == nil || *raw == "" {
		return prev
	}
	return *raw
}

func overrideInt(prev int, raw *string) int {
	if raw == nil {
		return prev
	}
	v, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return prev
	}
	return v
}

func overrideFloat(prev float64, raw *string) float64 {
	if raw == nil {
		return prev
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return prev
	}
	return v
}
