package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// DecodeJSON decodes the request body into the given value. Bodies that
// encoding/json would quietly tolerate but that are malformed input for
// this API are rejected: a bare JSON null (which would decode into a zero
// value or nil slice without error) and trailing content after the first
// value.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if string(raw) == "null" {
		return errors.New("request body is JSON null")
	}

	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return errors.New("unexpected content after JSON value")
	}

	return json.Unmarshal(raw, v)
}
