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


// Package consolidate merges per-page markdown artifacts into one ordered
// document.
//
// The inference backend writes one markdown file per page, optionally with
// a "no header/footer" (_nohf) variant. The consolidator selects exactly
// one artifact per page (preferring the plain variant), orders them by page
// number, extracts inline base64 images into sequentially numbered asset
// files, and concatenates the rewritten pages with a horizontal rule
// between consecutive pages.
//
// Per-artifact failures (an unreadable page file, a single undecodable
// image) are recovered locally and never abort the document; only an
// inaccessible input directory, an empty artifact set, or an unwritable
// output escalate to a postprocess failure.
package consolidate
