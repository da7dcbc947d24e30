// Package tablestate snapshots a catalog view (page, sort, search, and
// every active filter control) into a compact URL-safe string so the
// exact view can be rebuilt after navigating to the image detail page
// and back.
package tablestate

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/url"
)

// DefaultPageSize matches the table's initial page size.
const DefaultPageSize = 5

// State is a serializable snapshot of the table view. Filters is the
// flat control-value map produced by filter.Spec.Values, including any
// open custom-range sub-values.
type State struct {
	PageNumber int               `json:"pageNumber"`
	PageSize   int               `json:"pageSize"`
	SortName   string            `json:"sortName,omitempty"`
	SortOrder  string            `json:"sortOrder,omitempty"`
	SearchText string            `json:"searchText,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
}

// New returns a state with default paging and an empty filter map.
func New() State {
	return State{PageNumber: 1, PageSize: DefaultPageSize, Filters: map[string]string{}}
}

// Normalize fills zero paging fields with defaults so a decoded state is
// always directly usable.
func (s *State) Normalize() {
	if s.PageNumber < 1 {
		s.PageNumber = 1
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if s.Filters == nil {
		s.Filters = map[string]string{}
	}
}

// Encode serializes the state to JSON, base64s it with the URL-safe
// alphabet, and percent-escapes the result for query embedding.
// Non-ASCII filter values (accented titles) survive the round trip
// because the JSON layer is UTF-8 throughout.
func Encode(s State) string {
	data, err := json.Marshal(s)
	if err != nil {
		// Only unmarshalable types can land here and State has none.
		slog.Warn("table state encode failed", "err", err)
		return ""
	}
	return url.QueryEscape(base64.URLEncoding.EncodeToString(data))
}

// Decode reverses Encode. It returns nil on any malformed input; the
// caller treats nil as "no saved state" and renders the default view.
// Legacy links carry standard-alphabet base64, so that form is accepted
// too.
func Decode(raw string) *State {
	if raw == "" {
		return nil
	}
	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		slog.Warn("table state unescape failed", "err", err)
		return nil
	}
	data, err := base64.URLEncoding.DecodeString(unescaped)
	if err != nil {
		data, err = base64.StdEncoding.DecodeString(unescaped)
	}
	if err != nil {
		slog.Warn("table state base64 decode failed", "err", err)
		return nil
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("table state unmarshal failed", "err", err)
		return nil
	}
	s.Normalize()
	return &s
}
