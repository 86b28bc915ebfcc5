package domain

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Revision returns a short content hash of the document's canonical JSON.
//
// Two documents with the same categories and sites in the same order have
// the same revision. Clients echo it back (If-Match) so an edit based on
// positions from an older read is rejected instead of hitting the wrong entry.
func Revision(doc *Document) string {
	data, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return RevisionOf(data)
}

// RevisionOf hashes an already serialized document.
func RevisionOf(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
