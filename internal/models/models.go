package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString decodes JSON strings, booleans, and numbers into a plain
// string. The catalog files are hand-edited, so fields like is_verified
// show up as "yes", true, or "true" depending on the row.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	// Last resort: keep the raw token so nothing is silently dropped.
	*f = FlexString(strings.Trim(string(data), `"`))
	return nil
}

func (f FlexString) String() string { return string(f) }

// Record is one catalog item. Records are loaded once per collection and
// never mutated in place; edits go through the store's upsert path which
// rewrites the whole file.
type Record struct {
	ID           FlexString `json:"id"`
	Acquired     string     `json:"acquired"`
	Type         string     `json:"type,omitempty"`
	NameBrand    string     `json:"name/brand"`
	Title        string     `json:"title,omitempty"`
	Franchise    string     `json:"franchise"`
	Description  string     `json:"description"`
	SizeModel    string     `json:"size/model#"`
	Size         string     `json:"size,omitempty"`
	Source       string     `json:"source"`
	Special      string     `json:"special,omitempty"`
	IsVerified   FlexString `json:"is_verified"`
	SerialNumber string     `json:"serialnumber"`
	OriginalCost FlexString `json:"original_cost"`
	CurrentValue FlexString `json:"current_value"`
	Image        string     `json:"image"`
}

// Column keys as they appear in filter specs and table state.
const (
	ColAcquired     = "acquired"
	ColNameBrand    = "name/brand"
	ColFranchise    = "franchise"
	ColDescription  = "description"
	ColSizeModel    = "size/model#"
	ColSource       = "source"
	ColSerialNumber = "serialnumber"
	ColOriginalCost = "original_cost"
	ColCurrentValue = "current_value"
	ColIsVerified   = "is_verified"
)

// DisplayTitle prefers name/brand and falls back to title, matching how
// the detail view labels an item.
func (r Record) DisplayTitle() string {
	if r.NameBrand != "" {
		return r.NameBrand
	}
	return r.Title
}

// Field returns the record's value for a filter/sort column key.
// Unknown keys return "".
func (r Record) Field(key string) string {
	switch key {
	case ColAcquired:
		return r.Acquired
	case ColNameBrand:
		return r.DisplayTitle()
	case ColFranchise:
		return r.Franchise
	case ColDescription:
		return r.Description
	case ColSizeModel:
		if r.SizeModel != "" {
			return r.SizeModel
		}
		return r.Size
	case ColSource:
		return r.Source
	case ColSerialNumber:
		return r.SerialNumber
	case ColOriginalCost:
		return r.OriginalCost.String()
	case ColCurrentValue:
		return r.CurrentValue.String()
	case ColIsVerified:
		return r.IsVerified.String()
	}
	return ""
}

// Verified reports whether the row should get verified styling.
func (r Record) Verified() bool {
	v := strings.ToLower(strings.TrimSpace(r.IsVerified.String()))
	return v == "yes" || v == "true"
}

// HasImage reports whether the record carries a real image reference.
// The shared placeholder (100.png) does not count.
func (r Record) HasImage() bool {
	if r.Image == "" {
		return false
	}
	parts := strings.Split(r.Image, "/")
	fn := strings.ToLower(parts[len(parts)-1])
	return fn != "100.png" && fn != "100"
}
