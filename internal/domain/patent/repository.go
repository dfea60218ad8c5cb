package patent

import "context"

// FetchRequest is one sub-resolution handed to a RecordStore: the values of a
// single identifier class (empty Class for a pure attribute search) plus the
// attribute criteria ANDed into it.
type FetchRequest struct {
	Class    IdentifierClass
	Values   []string
	Filters  map[string][]string
	Sort     []string
	ForceXML bool
}

// Criteria flattens the request into field -> accepted values, identifier
// class first.
func (r FetchRequest) Criteria() map[string][]string {
	out := make(map[string][]string, len(r.Filters)+1)
	for k, v := range r.Filters {
		out[k] = v
	}
	if r.Class != "" && len(r.Values) > 0 {
		out[string(r.Class)] = r.Values
	}
	return out
}

// RecordStore fetches normalized records from one backend.
type RecordStore interface {
	// Fetch returns every record matching req.  Transient failures are
	// retried internally; an exhausted budget surfaces as ErrCodeSourceUnavailable.
	Fetch(ctx context.Context, req FetchRequest) ([]RawRecord, error)

	// FetchRelated returns the items of rel for rec, loading them from the
	// backend when rec was decoded without that sub-collection.
	FetchRelated(ctx context.Context, rec RawRecord, rel Relation) ([]map[string]string, error)
}

//Personal.AI order the ending
