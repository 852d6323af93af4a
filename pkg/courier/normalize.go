package courier

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Place is the uniform {id, name} shape served to clients.
type Place struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Field-name candidates, tried in order.
var (
	idFields   = []string{"id", "_id", "value", "code"}
	nameFields = []string{"name", "label", "title"}

	// listKeys are the wrapper keys upstreams use around the record list.
	listKeys = []string{"data", "cities", "areas", "items", "results", "result"}
)

// Normalize decodes an upstream list response into Places. It accepts a bare
// array or an object wrapping the array under one of listKeys (one level of
// nesting, e.g. {"data": {"cities": [...]}}). Records without a usable name
// are dropped; a record without an id uses its name as id.
func Normalize(raw []byte) []Place {
	records := extractRecords(raw, 2)
	places := make([]Place, 0, len(records))
	for _, record := range records {
		if p, ok := NormalizeRecord(record); ok {
			places = append(places, p)
		}
	}
	return places
}

// NormalizeRecord maps one upstream record onto a Place.
func NormalizeRecord(record map[string]interface{}) (Place, bool) {
	name := firstString(record, nameFields)
	if name == "" {
		return Place{}, false
	}
	id := firstString(record, idFields)
	if id == "" {
		id = name
	}
	return Place{ID: id, Name: name}, true
}

func extractRecords(raw []byte, depth int) []map[string]interface{} {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		records := make([]map[string]interface{}, 0, len(items))
		for _, item := range items {
			if record := decodeRecord(item); record != nil {
				records = append(records, record)
			}
		}
		return records
	}

	if raw[0] != '{' || depth == 0 {
		return nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	for _, key := range listKeys {
		if inner, ok := wrapper[key]; ok {
			if records := extractRecords(inner, depth-1); len(records) > 0 {
				return records
			}
		}
	}
	return nil
}

// decodeRecord keeps numbers as json.Number so ids above 2^53 survive intact.
func decodeRecord(item []byte) map[string]interface{} {
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()
	var record map[string]interface{}
	if err := dec.Decode(&record); err != nil {
		return nil
	}
	return record
}

func firstString(record map[string]interface{}, candidates []string) string {
	for _, key := range candidates {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		if s := stringify(value); s != "" {
			return s
		}
	}
	return ""
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return ""
	case json.Number:
		return v.String()
	}
	return ""
}
