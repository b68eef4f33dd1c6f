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


// Package storage provides the document registry abstraction.
//
// The registry keeps one record per document identifier describing the
// most recent submission published (or attempted) under that id. The
// repository interface decouples the pipeline and server from the
// concrete backend; the badger subpackage provides the BadgerDB
// implementation, including an in-memory constructor for tests.
//
// Records are serialized with hand-written mus-go serializers; see
// serialization.go.
package storage
