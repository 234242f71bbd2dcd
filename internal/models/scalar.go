package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Scalar is a JSON string, number or boolean kept as text. Numbers keep their
// literal form ("1.5", "149999"). Values a client would consider blank
// (null, "", 0, false) and objects or arrays decode to "".
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case string:
		*s = Scalar(v)
	case float64:
		if v == 0 {
			*s = ""
		} else {
			*s = Scalar(bytes.TrimSpace(b))
		}
	case bool:
		if v {
			*s = "true"
		} else {
			*s = ""
		}
	default:
		*s = ""
	}
	return nil
}
