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


// Package inference defines the boundary to the external OCR/layout
// recognition backend.
//
// The backend is an opaque collaborator: one synchronous call takes a
// staged file path and resolved options and returns ordered per-page
// results. This package provides the Invoker interface, an HTTP client
// implementation, the layered options resolver (defaults < environment <
// request body < request headers) and a liveness prober.
//
// Use the mock subpackage for test doubles.
package inference
