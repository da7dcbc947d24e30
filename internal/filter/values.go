package filter

import "strings"

// Flat-map keys for the non-column controls, as captured into table
// state and URL parameters.
const (
	KeyAcquired       = "acquired"
	KeyAcquiredRange  = "acquired_range"
	KeyOriginalSelect = "original_select"
	KeyOriginalRange  = "original_range"
	KeyCurrentSelect  = "current_select"
	KeyCurrentRange   = "current_range"
)

// Values flattens the spec into the control-value map carried inside a
// table state. Empty expressions are omitted so the encoded form stays
// compact. Sub-range values are pipe-joined exactly as the filter
// controls hand them over.
func (s Spec) Values() map[string]string {
	out := map[string]string{}
	for col, v := range s.Columns {
		if strings.TrimSpace(v) != "" {
			out[col] = v
		}
	}
	if s.Acquired != "" {
		out[KeyAcquired] = s.Acquired
	}
	if s.Acquired == SelectRange && (s.AcquiredRange.Start != "" || s.AcquiredRange.End != "") {
		out[KeyAcquiredRange] = s.AcquiredRange.Start + "|" + s.AcquiredRange.End
	}
	if s.OriginalSelect != "" {
		out[KeyOriginalSelect] = s.OriginalSelect
	}
	if s.OriginalSelect == SelectCustom {
		out[KeyOriginalRange] = joinRange(s.OriginalRange)
	}
	if s.CurrentSelect != "" {
		out[KeyCurrentSelect] = s.CurrentSelect
	}
	if s.CurrentSelect == SelectCustom {
		out[KeyCurrentRange] = joinRange(s.CurrentRange)
	}
	return out
}

// SpecFromValues rebuilds a Spec from a control-value map. Unknown keys
// are treated as column expressions, which keeps the codec agnostic of
// the column set.
func SpecFromValues(values map[string]string) Spec {
	spec := Spec{Columns: map[string]string{}}
	for k, v := range values {
		switch k {
		case KeyAcquired:
			spec.Acquired = v
		case KeyAcquiredRange:
			start, end, _ := splitPipe2(v)
			spec.AcquiredRange = DateRange{Start: start, End: end}
		case KeyOriginalSelect:
			spec.OriginalSelect = v
		case KeyOriginalRange:
			spec.OriginalRange = parseRange(v)
		case KeyCurrentSelect:
			spec.CurrentSelect = v
		case KeyCurrentRange:
			spec.CurrentRange = parseRange(v)
		default:
			spec.Columns[k] = v
		}
	}
	return spec
}

func joinRange(r NumericRange) string {
	blank := "0"
	if r.BlankOnly {
		blank = "1"
	}
	return r.Min + "|" + r.Max + "|" + blank
}

func parseRange(s string) NumericRange {
	parts := strings.SplitN(s, "|", 3)
	r := NumericRange{}
	if len(parts) > 0 {
		r.Min = parts[0]
	}
	if len(parts) > 1 {
		r.Max = parts[1]
	}
	if len(parts) > 2 {
		r.BlankOnly = parts[2] == "1"
	}
	return r
}

func splitPipe2(s string) (string, string, bool) {
	parts := strings.SplitN(s, "|", 2)
	if len(parts) == 2 {
		return parts[0], parts[1], true
	}
	return parts[0], "", false
}
