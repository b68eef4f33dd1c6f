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

import "fmt"

// ValidateDocumentRecord validates a DocumentRecord according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Status must be a known value
//   - Pages and Assets must not be negative
//
// NOT validated:
//   - DocumentPath (empty until finalization)
//   - PublishedAt (zero until finalization)
func ValidateDocumentRecord(record *DocumentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidDocumentRecord)
	}

	if record.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, ErrEmptyDocumentID)
	}

	if err := ValidateStatus(record.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, err)
	}

	if record.Pages < 0 || record.Assets < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocumentRecord, ErrNegativeCount)
	}

	return nil
}

// ValidateStatus validates that a Status has a known value.
func ValidateStatus(status Status) error {
	if status < StatusStaged || status > StatusCleaned {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, status)
	}
	return nil
}
