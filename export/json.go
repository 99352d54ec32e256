package export

import (
	jsoniter "github.com/json-iterator/go"
)

// obj is a JSON object under construction.  The output document is assembled
// as a tree of obj and arr values and marshalled in a single pass once the
// whole module has been serialized.
type obj = map[string]interface{}

// arr is a JSON array under construction.
type arr = []interface{}

// json is the marshalling configuration for the output document: two-space
// indentation and sorted object keys, so that two runs over the same module
// produce byte-identical documents.
var json = jsoniter.Config{
	IndentionStep: 2,
	SortMapKeys:   true,
	EscapeHTML:    false,
}.Froze()

// MarshalDocument renders an assembled document tree to its final byte form.
func MarshalDocument(doc obj) ([]byte, error) {
	return json.Marshal(doc)
}
