package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID identifies a result within one analysis. Numeric JSON ids are kept in
// their shortest decimal form so that 3, 3.0 and "3" (once normalized) compare
// equal as plain strings.
type ID string

// NoID is the zero ID, used where "no selection" is meant.
const NoID ID = ""

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*id = NoID
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	parsed, ok := NumericID(string(data))
	if !ok {
		return fmt.Errorf("id must be a string or a number, got %s", data)
	}
	*id = parsed
	return nil
}

// NumericID parses raw as a number and returns its canonical form. Blank or
// non-numeric input is rejected.
func NumericID(raw string) (ID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NoID, false
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return NoID, false
	}

	return ID(strconv.FormatFloat(v, 'f', -1, 64)), true
}

func (id ID) String() string {
	return string(id)
}
