package query

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// fakeStore serves records from memory, matching every criterion of a
// FetchRequest against the stored fields.
type fakeStore struct {
	mu      sync.Mutex
	records []patent.RawRecord
	fail    map[patent.IdentifierClass]error
	related map[patent.Relation][]map[string]string
	relErr  error
	calls   []patent.FetchRequest
	relHits int
	onFetch func(req patent.FetchRequest)
}

func newFakeStore(records ...patent.RawRecord) *fakeStore {
	return &fakeStore{records: records, fail: map[patent.IdentifierClass]error{}}
}

func (s *fakeStore) Fetch(ctx context.Context, req patent.FetchRequest) ([]patent.RawRecord, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	hook := s.onFetch
	err := s.fail[req.Class]
	s.mu.Unlock()

	if hook != nil {
		hook(req)
	}
	if err != nil {
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

func (s *fakeStore) FetchRelated(ctx context.Context, rec patent.RawRecord, rel patent.Relation) ([]map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relHits++
	if s.relErr != nil {
		return nil, s.relErr
	}
	return s.related[rel], nil
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func matches(rec patent.RawRecord, criteria map[string][]string) bool {
	for field, values := range criteria {
		hit := false
		for _, v := range values {
			if rec.Field(field) == v {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// mockStore is a scripted RecordStore for call-level expectations.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Fetch(ctx context.Context, req patent.FetchRequest) ([]patent.RawRecord, error) {
	args := m.Called(ctx, req)
	recs, _ := args.Get(0).([]patent.RawRecord)
	return recs, args.Error(1)
}

func (m *mockStore) FetchRelated(ctx context.Context, rec patent.RawRecord, rel patent.Relation) ([]map[string]string, error) {
	args := m.Called(ctx, rec, rel)
	items, _ := args.Get(0).([]map[string]string)
	return items, args.Error(1)
}

// record builds a fully loaded record so no relation needs hydrating.
func record(fields map[string]string) patent.RawRecord {
	rec := patent.NewRawRecord(patent.FormatJSON)
	for k, v := range fields {
		rec.SetField(k, v)
	}
	for _, rel := range patent.Relations {
		rec = rec.WithRelation(rel, nil)
	}
	return rec
}

func offline() error {
	return errors.SourceUnavailable("examination data backend is offline")
}

//Personal.AI order the ending
