// Package patent holds the prosecution record model: the raw record shape every
// backend normalizes into, the field vocabulary, and the typed Application
// with its derived entities.  Backends and the query engine depend on this
// package; it depends on nothing but pkg/errors.
package patent

import "sort"

// SourceFormat tags the upstream representation a RawRecord was decoded from.
type SourceFormat int

const (
	FormatJSON SourceFormat = iota + 1
	FormatXML
)

func (f SourceFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// Relation names a nested sub-collection of a record.
type Relation string

const (
	RelationTransactions    Relation = "transactions"
	RelationParents         Relation = "parent_continuity"
	RelationChildren        Relation = "child_continuity"
	RelationForeignPriority Relation = "foreign_priority"
	RelationPtaPteHistory   Relation = "pta_pte_tran_history"
	RelationAttorneys       Relation = "attrny_addr"
)

// Relations lists every sub-collection a complete record carries.
var Relations = []Relation{
	RelationTransactions,
	RelationParents,
	RelationChildren,
	RelationForeignPriority,
	RelationPtaPteHistory,
	RelationAttorneys,
}

// RawRecord is a backend record after field-name normalization: canonical
// snake_case keys, dates as YYYY-MM-DD and numbers in shortest decimal form.
// Two RawRecords of the same application decoded from different formats hold
// the same Fields and Related values; only Format differs.
type RawRecord struct {
	Format  SourceFormat
	Fields  map[string]string
	Related map[Relation][]map[string]string
}

// NewRawRecord returns an empty record of the given format.
func NewRawRecord(format SourceFormat) RawRecord {
	return RawRecord{
		Format:  format,
		Fields:  make(map[string]string),
		Related: make(map[Relation][]map[string]string),
	}
}

// Field returns a field value or "".
func (r RawRecord) Field(name string) string {
	return r.Fields[name]
}

// HasRelation reports whether the sub-collection was loaded, even if empty.
func (r RawRecord) HasRelation(rel Relation) bool {
	_, ok := r.Related[rel]
	return ok
}

// Collection returns the items of a sub-collection.
func (r RawRecord) Collection(rel Relation) []map[string]string {
	return r.Related[rel]
}

// WithRelation returns a copy of r with rel replaced by items.
func (r RawRecord) WithRelation(rel Relation, items []map[string]string) RawRecord {
	related := make(map[Relation][]map[string]string, len(r.Related)+1)
	for k, v := range r.Related {
		related[k] = v
	}
	if items == nil {
		items = []map[string]string{}
	}
	related[rel] = items
	r.Related = related
	return r
}

// MissingRelations lists the sub-collections r was not loaded with, in
// Relations order.
func (r RawRecord) MissingRelations() []Relation {
	var out []Relation
	for _, rel := range Relations {
		if !r.HasRelation(rel) {
			out = append(out, rel)
		}
	}
	return out
}

// FieldNames returns the populated field names in sorted order.
func (r RawRecord) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Personal.AI order the ending
