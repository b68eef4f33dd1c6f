package badger

// Key prefixes for different data types
const (
	documentRecordPrefix = "docrec"
)

// makeDocumentRecordKey generates a key for a document record by id.
func makeDocumentRecordKey(id string) []byte {
	return []byte(documentRecordPrefix + ":" + id)
}
