package patent

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical date representation inside a RawRecord.
const DateLayout = "2006-01-02"

// upstream date spellings seen in the examination data payloads
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"01-02-2006",
	"01/02/2006",
	"20060102",
}

// NormalizeDate rewrites an upstream date as YYYY-MM-DD.  The calendar date is
// taken as written; no time-zone conversion is applied.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout), true
		}
	}
	return "", false
}

// NormalizeNumber rewrites a numeric string in shortest decimal form, so
// "169", "169.0" and "1.69e2" all become "169".
func NormalizeNumber(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// NormalizeValue normalizes raw according to kind.  Values that do not parse
// as their kind are dropped ("" , false) so both source formats agree on absence.
func NormalizeValue(kind FieldKind, raw string) (string, bool) {
	switch kind {
	case KindDate:
		return NormalizeDate(raw)
	case KindNumber:
		return NormalizeNumber(raw)
	default:
		v := strings.TrimSpace(raw)
		return v, v != ""
	}
}

// NormalizeItem normalizes a sub-collection item against its descriptors and
// drops unknown or empty keys.
func NormalizeItem(rel Relation, item map[string]string) map[string]string {
	out := make(map[string]string, len(item))
	for _, d := range RelationFields[rel] {
		if v, ok := NormalizeValue(d.Kind, item[d.Name]); ok {
			out[d.Name] = v
		}
	}
	return out
}

// SetField stores a normalized application field on r.  Unknown names are
// ignored.
func (r RawRecord) SetField(name, raw string) {
	d, ok := fieldIndex[name]
	if !ok {
		return
	}
	v, ok := NormalizeValue(d.Kind, raw)
	if !ok {
		return
	}
	if d.IsIdentifier() {
		if c, err := CanonicalIdentifier(d.Identifier, v); err == nil {
			v = c
		}
	}
	r.Fields[name] = v
}

//Personal.AI order the ending
