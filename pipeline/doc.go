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


// Package pipeline orchestrates one document submission from staged input
// to published artifact.
//
// Each submission is an independent unit of work executed on a shared
// worker pool; the stages inside a unit run sequentially: stage the raw
// payload, invoke the recognition backend, consolidate the per-page
// artifacts, publish the result, record the outcome. The cleanup guard
// runs on every exit path, success or failure, and never surfaces an
// error of its own.
package pipeline
