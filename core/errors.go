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


package core

import "errors"

// Error kinds. Every error surfaced by the pipeline wraps exactly one of
// these, so callers can map it to a response class with errors.Is.
var (
	// ErrClientInput indicates a fault in the submitted request: empty or
	// missing payload, undecodable base64, malformed required field.
	ErrClientInput = errors.New("client input error")

	// ErrUpstreamUnavailable indicates the inference backend failed its
	// liveness probe or timed out.
	ErrUpstreamUnavailable = errors.New("inference backend unavailable")

	// ErrInference indicates the inference backend call raised.
	ErrInference = errors.New("inference failed")

	// ErrPostprocess indicates a top-level consolidation or finalize step
	// could not complete.
	ErrPostprocess = errors.New("postprocess failed")
)

// Domain validation errors
var (
	// ErrInvalidDocumentRecord indicates a DocumentRecord failed validation.
	ErrInvalidDocumentRecord = errors.New("invalid document record")

	// ErrEmptyDocumentID indicates the ID field is empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrInvalidStatus indicates an invalid Status value.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNegativeCount indicates a negative page or asset count.
	ErrNegativeCount = errors.New("counts cannot be negative")
)
