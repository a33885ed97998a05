// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hero

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Sentinel is the upstream convention for "not applicable/unknown".
const Sentinel = "-"

// Text is an optional string. JSON null, "" and the "-" sentinel all decode to
// the absent state so nothing downstream ever has to compare against "-".
type Text struct {
	value string
	ok    bool
}

// Some returns a present Text, unless s is itself empty or the sentinel.
func Some(s string) Text {
	if isAbsent(s) {
		return Text{}
	}
	return Text{value: s, ok: true}
}

// Get returns the value and whether it is present.
func (t Text) Get() (string, bool) {
	return t.value, t.ok
}

// Or returns the value, or def when absent.
func (t Text) Or(def string) string {
	if !t.ok {
		return def
	}
	return t.value
}

// Present reports whether a value is set.
func (t Text) Present() bool {
	return t.ok
}

// String returns the value or "".
func (t Text) String() string {
	return t.value
}

func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*t = Text{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = Some(s)
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.ok {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}

// MarshalYAML keeps yaml output in line with the JSON form.
func (t Text) MarshalYAML() (interface{}, error) {
	if !t.ok {
		return nil, nil
	}
	return t.value, nil
}

func isAbsent(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == Sentinel
}
