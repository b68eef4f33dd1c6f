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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

// Field order: ID, Status, Pages, Assets, DocumentPath, CreatedAt,
// PublishedAt. Times travel as Unix microseconds; the zero time travels
// as 0 so it survives a round trip exactly.

// MarshalDocumentRecord serializes a DocumentRecord to bytes.
func MarshalDocumentRecord(record *core.DocumentRecord) []byte {
	buf := make([]byte, sizeDocumentRecord(record))
	n := ord.String.Marshal(record.ID, buf)
	n += varint.Int.Marshal(int(record.Status), buf[n:])
	n += varint.Int.Marshal(record.Pages, buf[n:])
	n += varint.Int.Marshal(record.Assets, buf[n:])
	n += ord.String.Marshal(record.DocumentPath, buf[n:])
	n += varint.Int64.Marshal(timeToMicros(record.CreatedAt), buf[n:])
	varint.Int64.Marshal(timeToMicros(record.PublishedAt), buf[n:])
	return buf
}

// UnmarshalDocumentRecord deserializes a DocumentRecord from bytes.
func UnmarshalDocumentRecord(data []byte) (*core.DocumentRecord, error) {
	var record core.DocumentRecord
	var n int

	id, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	record.ID = id
	data = data[n:]

	status, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: status: %w", ErrSerializationFailed, err)
	}
	record.Status = core.Status(status)
	data = data[n:]

	pages, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: pages: %w", ErrSerializationFailed, err)
	}
	record.Pages = pages
	data = data[n:]

	assets, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: assets: %w", ErrSerializationFailed, err)
	}
	record.Assets = assets
	data = data[n:]

	path, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: document path: %w", ErrSerializationFailed, err)
	}
	record.DocumentPath = path
	data = data[n:]

	created, n, err := varint.Int64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: created at: %w", ErrSerializationFailed, err)
	}
	record.CreatedAt = microsToTime(created)
	data = data[n:]

	published, _, err := varint.Int64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: published at: %w", ErrSerializationFailed, err)
	}
	record.PublishedAt = microsToTime(published)

	return &record, nil
}

func sizeDocumentRecord(record *core.DocumentRecord) int {
	return ord.String.Size(record.ID) +
		varint.Int.Size(int(record.Status)) +
		varint.Int.Size(record.Pages) +
		varint.Int.Size(record.Assets) +
		ord.String.Size(record.DocumentPath) +
		varint.Int64.Size(timeToMicros(record.CreatedAt)) +
		varint.Int64.Size(timeToMicros(record.PublishedAt))
}

func timeToMicros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func microsToTime(micros int64) time.Time {
	if micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros).UTC()
}
