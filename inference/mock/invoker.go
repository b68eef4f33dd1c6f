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


package mock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/Vividata-Research/Atlas-OCR/core"
	"github.com/Vividata-Research/Atlas-OCR/inference"
)

// Invoker is a test double for inference.Invoker.
// It allows custom behavior injection via function fields.
type Invoker struct {
	// InvokeFunc is called by Invoke if set.
	// If nil, uses default behavior driven by Pages and Err.
	InvokeFunc func(ctx context.Context, req inference.Request) ([]core.PageResult, error)

	// Pages maps page number to markdown content written to the work
	// directory by the default behavior.
	Pages map[int]string

	// Err, if set, is returned by the default behavior instead of pages.
	Err error

	callCount int
}

var _ inference.Invoker = (*Invoker)(nil)

// NewInvoker creates a mock invoker with no pages configured.
func NewInvoker() *Invoker {
	return &Invoker{}
}

// Invoke writes the configured pages as artifacts into req.WorkDir and
// returns matching page results, mimicking a real backend call.
func (m *Invoker) Invoke(ctx context.Context, req inference.Request) ([]core.PageResult, error) {
	m.callCount++

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, req)
	}
	if m.Err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInference, m.Err)
	}

	if err := os.MkdirAll(req.WorkDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInference, err)
	}

	pages := make([]int, 0, len(m.Pages))
	for page := range m.Pages {
		pages = append(pages, page)
	}
	slices.Sort(pages)

	results := make([]core.PageResult, 0, len(pages))
	for _, page := range pages {
		name := fmt.Sprintf("%s_page_%d.md", req.DocumentID, page)
		path := filepath.Join(req.WorkDir, name)
		if err := os.WriteFile(path, []byte(m.Pages[page]), 0644); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrInference, err)
		}
		results = append(results, core.PageResult{Page: page, MarkdownPath: path})
	}
	return results, nil
}

// CallCount returns the number of times Invoke was called.
func (m *Invoker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and configured behavior.
func (m *Invoker) Reset() {
	m.callCount = 0
	m.InvokeFunc = nil
	m.Pages = nil
	m.Err = nil
}
