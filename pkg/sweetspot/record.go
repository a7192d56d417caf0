// Copyright (c) 2024 Adam Wyatt
//
// This software is licensed under the MIT License.
// See the LICENSE file in the root of the repository for details.

package sweetspot

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Category describes what a tee time is reserved for. The API sends either
// an object or, in older versions, a bare string.
type Category interface {
	isCategory()
}

// StructuredCategory is the object form of a category.
type StructuredCategory struct {
	Name       string
	CustomName string
	Display    string
	// Bookable is nil when the API leaves tee_time_bookable out.
	Bookable *bool
}

// LegacyCategory is the flat form of a category.
type LegacyCategory struct {
	Raw string
}

func (StructuredCategory) isCategory() {}
func (LegacyCategory) isCategory()     {}

// Record is one tee time as returned by /api/tee-times.
type Record struct {
	Name     string
	Category Category
	// Start is the "from" field, or "start" when "from" is empty.
	Start          string
	AvailableSlots json.RawMessage
}

type rawRecord struct {
	Name           json.RawMessage `json:"name"`
	Category       json.RawMessage `json:"category"`
	From           json.RawMessage `json:"from"`
	Start          json.RawMessage `json:"start"`
	AvailableSlots json.RawMessage `json:"available_slots"`
}

type rawCategory struct {
	Name       json.RawMessage `json:"name"`
	CustomName json.RawMessage `json:"custom_name"`
	Display    json.RawMessage `json:"display"`
	Bookable   json.RawMessage `json:"tee_time_bookable"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Record{
		Name:           stringOf(raw.Name),
		Category:       categoryOf(raw.Category),
		Start:          stringOf(raw.From),
		AvailableSlots: raw.AvailableSlots,
	}
	if r.Start == "" {
		r.Start = stringOf(raw.Start)
	}
	return nil
}

func categoryOf(data json.RawMessage) Category {
	if isNull(data) {
		return StructuredCategory{}
	}
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] != '{' {
		return LegacyCategory{Raw: stringOf(trimmed)}
	}

	var raw rawCategory
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return StructuredCategory{}
	}
	cat := StructuredCategory{
		Name:       stringOf(raw.Name),
		CustomName: stringOf(raw.CustomName),
		Display:    stringOf(raw.Display),
	}
	if !isNull(raw.Bookable) {
		var bookable bool
		if err := json.Unmarshal(raw.Bookable, &bookable); err == nil {
			cat.Bookable = &bookable
		}
	}
	return cat
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// stringOf returns the JSON string in data, or "" for any other value.
func stringOf(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}
	return s
}

// Slots coerces available_slots to an int. Anything that is not a number,
// a numeric string or a boolean counts as zero.
func (r Record) Slots() int {
	return coerceInt(r.AvailableSlots)
}

func coerceInt(data json.RawMessage) int {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	case bool:
		if n {
			return 1
		}
	}
	return 0
}
