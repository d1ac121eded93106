package model

import "encoding/json"

// JSONText carries a value that is stored as text but may hold structured
// JSON. Incoming JSON strings are kept verbatim, any other incoming value is
// stored as its compact JSON encoding. On output, text that still parses as
// JSON is emitted structurally; anything else is emitted as a plain string,
// so malformed legacy rows round-trip instead of failing the whole read.
type JSONText string

func (t *JSONText) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = JSONText(s)
		return nil
	}

	var buf json.RawMessage
	if err := json.Unmarshal(data, &buf); err != nil {
		return err
	}
	compact, err := json.Marshal(buf)
	if err != nil {
		return err
	}
	*t = JSONText(compact)
	return nil
}

func (t JSONText) MarshalJSON() ([]byte, error) {
	if json.Valid([]byte(t)) {
		return []byte(t), nil
	}
	return json.Marshal(string(t))
}

func (t JSONText) String() string {
	return string(t)
}
