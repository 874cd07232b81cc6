package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt is an integer field that upstream APIs deliver as either a JSON
// number or a quoted string ("3", 3, "3.0" all decode to 3). Parsing happens
// once at the boundary so the rest of the pipeline compares plain integers.
type FlexInt int64

// UnmarshalJSON accepts a number, a numeric string, or null.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt(n)
		return nil
	}
	// Some feeds quote integers as floats ("3.0")
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Unparsable values degrade to zero rather than poisoning the record
		*f = 0
		return nil
	}
	*f = FlexInt(int64(fl))
	return nil
}

// MarshalJSON always emits a plain number.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(f), 10)), nil
}

// Int returns the value as a plain int64.
func (f FlexInt) Int() int64 { return int64(f) }

// FlexString is a string field that upstream APIs deliver as either a JSON
// string or a bare number (scores arrive both ways depending on match state).
type FlexString string

// UnmarshalJSON accepts a string, a number, or null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// MarshalJSON always emits a string.
func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns the underlying string value.
func (f FlexString) String() string { return string(f) }
