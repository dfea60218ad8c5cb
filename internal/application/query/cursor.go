package query

import (
	"context"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// Cursor walks the records of a QuerySet.
//
//	cur := qs.Cursor(ctx)
//	for cur.Next() {
//		app := cur.Record()
//	}
//	if err := cur.Err(); err != nil { ... }
//
// The first call to Next resolves the query.  A partial resolution still
// yields the records that resolved; Err then reports the partial failure.
type Cursor struct {
	ctx     context.Context
	qs      *QuerySet
	started bool
	records []*patent.Application
	pos     int
	err     error
}

func (q *QuerySet) Cursor(ctx context.Context) *Cursor {
	return &Cursor{ctx: ctx, qs: q, pos: -1}
}

// Next advances to the next record and reports whether there is one.
func (c *Cursor) Next() bool {
	if !c.started {
		c.started = true
		c.records, c.err = c.qs.All(c.ctx)
		if c.err != nil && !errors.IsPartialResolution(c.err) {
			c.records = nil
			return false
		}
	}
	if c.pos+1 >= len(c.records) {
		return false
	}
	c.pos++
	return true
}

// Record returns the current record, or nil before the first Next.
func (c *Cursor) Record() *patent.Application {
	if c.pos < 0 || c.pos >= len(c.records) {
		return nil
	}
	return c.records[c.pos]
}

func (c *Cursor) Err() error { return c.err }

//Personal.AI order the ending
