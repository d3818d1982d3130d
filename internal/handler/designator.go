package handler

import (
	"encoding/json"
	"errors"
)

// WriterDesignator is the raw writer value of a book payload. Clients send
// either a string (a name or a writer URL) or a number (a writer id).
type WriterDesignator string

func (d *WriterDesignator) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = WriterDesignator(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*d = WriterDesignator(n.String())
		return nil
	}

	return errors.New("writer must be a string or a number")
}
