package testutil

import (
	"context"
	"sync"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
)

// MemStore is an in-memory patent.RecordStore.  A record matches a request
// when every criterion has a value equal to the record's field.
type MemStore struct {
	mu      sync.Mutex
	records []patent.RawRecord
	fail    map[patent.IdentifierClass]error
	calls   int
	forced  bool
}

func NewMemStore(records ...patent.RawRecord) *MemStore {
	return &MemStore{records: records, fail: map[patent.IdentifierClass]error{}}
}

// Fail makes every request of class answer err; a nil err clears it.
func (s *MemStore) Fail(class patent.IdentifierClass, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, class)
		return
	}
	s.fail[class] = err
}

func (s *MemStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// ForcedXML reports whether any request asked for the XML path.
func (s *MemStore) ForcedXML() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forced
}

func (s *MemStore) Fetch(_ context.Context, req patent.FetchRequest) ([]patent.RawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.forced = s.forced || req.ForceXML
	if err := s.fail[req.Class]; err != nil {
		return nil, err
	}
	var out []patent.RawRecord
	for _, rec := range s.records {
		if matches(rec, req.Criteria()) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemStore) FetchRelated(context.Context, patent.RawRecord, patent.Relation) ([]map[string]string, error) {
	return []map[string]string{}, nil
}

func matches(rec patent.RawRecord, criteria map[string][]string) bool {
	for field, values := range criteria {
		hit := false
		for _, v := range values {
			hit = hit || rec.Field(field) == v
		}
		if !hit {
			return false
		}
	}
	return true
}

// Loaded builds a JSON-format record with every relation present and the
// given parent continuity rows.
func Loaded(fields map[string]string, parents ...map[string]string) patent.RawRecord {
	rec := patent.NewRawRecord(patent.FormatJSON)
	for k, v := range fields {
		rec.SetField(k, v)
	}
	for _, rel := range patent.Relations {
		rec = rec.WithRelation(rel, nil)
	}
	return rec.WithRelation(patent.RelationParents, parents)
}

// Fixtures returns two granted applications; 15384723 is a continuation of
// 14095073.
func Fixtures() []patent.RawRecord {
	return []patent.RawRecord{
		Loaded(map[string]string{
			"appl_id": "14095073", "patent_number": "9402813", "app_filing_date": "2013-12-03",
			"patent_title": "SUCTION AND DISCHARGE LINES", "app_status": "Patented Case",
		}),
		Loaded(map[string]string{
			"appl_id": "15384723", "app_filing_date": "2016-12-20", "patent_title": "PUMP",
			"app_early_pub_number": "US20170101010A1", "app_status": "Patented Case",
		}, map[string]string{
			"claim_application_number_text":  "14095073",
			"application_number_text":        "15384723",
			"filing_date":                    "2013-12-03",
			"application_status_description": "This application is a Continuation of",
		}),
	}
}

//Personal.AI order the ending
