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


// Package intake stages raw submitted documents for processing.
//
// A submission enters the system as an opaque byte payload. The stager
// detects the file type from its content signature, assigns a unique
// document identifier and persists the bytes under the shared output
// root's uploads area. Staged inputs are ephemeral: the pipeline's
// cleanup guard removes them unconditionally at request end.
package intake
