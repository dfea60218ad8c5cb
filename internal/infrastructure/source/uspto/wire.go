package uspto

import (
	"strings"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
)

// wireOverrides lists upstream names that do not follow plain camelCase.
var wireOverrides = map[string]string{
	"app_pct_number": "appPCTNumber",
}

// wireName returns the upstream spelling of a canonical field name.
func wireName(name string) string {
	if w, ok := wireOverrides[name]; ok {
		return w
	}
	parts := strings.Split(name, "_")
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}

// Upstream -> canonical lookups, built from the field vocabulary so that
// unknown upstream keys are dropped in both formats alike.
var (
	fieldFromWire    = map[string]string{}
	relationFromWire = map[string]patent.Relation{}
	itemFromWire     = map[patent.Relation]map[string]string{}
)

func init() {
	for _, d := range patent.ApplicationFields {
		fieldFromWire[wireName(d.Name)] = d.Name
	}
	for _, rel := range patent.Relations {
		relationFromWire[wireName(string(rel))] = rel
		m := make(map[string]string)
		for _, d := range patent.RelationFields[rel] {
			m[wireName(d.Name)] = d.Name
		}
		itemFromWire[rel] = m
	}
}

// recordBuilder accumulates one upstream document into a RawRecord.
type recordBuilder struct {
	rec patent.RawRecord
}

func newRecordBuilder(format patent.SourceFormat) *recordBuilder {
	return &recordBuilder{rec: patent.NewRawRecord(format)}
}

func (b *recordBuilder) field(wire, value string) {
	if name, ok := fieldFromWire[wire]; ok {
		b.rec.SetField(name, value)
	}
}

// relation returns the relation for wire, or false for scalar keys.
func relationFor(wire string) (patent.Relation, bool) {
	rel, ok := relationFromWire[wire]
	return rel, ok
}

func (b *recordBuilder) items(rel patent.Relation, raw []map[string]string) {
	names := itemFromWire[rel]
	items := make([]map[string]string, 0, len(raw))
	for _, r := range raw {
		item := make(map[string]string, len(r))
		for k, v := range r {
			if name, ok := names[k]; ok {
				item[name] = v
			}
		}
		items = append(items, patent.NormalizeItem(rel, item))
	}
	b.rec = b.rec.WithRelation(rel, items)
}

func (b *recordBuilder) record() patent.RawRecord {
	return b.rec
}

//Personal.AI order the ending
