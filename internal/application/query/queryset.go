package query

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// buffer holds the deduplicated results of a QuerySet once it has been
// resolved completely: resolved keeps resolution order, records is that
// slice sorted by the QuerySet's ordering.  QuerySets that differ only in
// Limit/Offset share one buffer.
type buffer struct {
	mu       sync.Mutex
	done     bool
	resolved []*patent.Application
	records  []*patent.Application
}

func (b *buffer) get() ([]*patent.Application, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.records, b.done
}

// source returns the records in resolution order.
func (b *buffer) source() ([]*patent.Application, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resolved, b.done
}

func (b *buffer) commit(resolved, records []*patent.Application) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.done {
		b.resolved = resolved
		b.records = records
		b.done = true
	}
}

// QuerySet is an immutable query specification plus its lazily filled
// result buffer.
type QuerySet struct {
	m        *Manager
	criteria Criteria
	order    []string
	opts     options
	offset   int
	limit    int // 0 = unbounded
	buf      *buffer
}

// derive copies q with a fresh buffer.
func (q *QuerySet) derive() *QuerySet {
	c := *q
	c.criteria = make(Criteria, len(q.criteria))
	for k, v := range q.criteria {
		c.criteria[k] = v
	}
	c.order = append([]string(nil), q.order...)
	c.buf = &buffer{}
	return &c
}

// Filter returns a QuerySet narrowed by c.  A field already present is
// replaced.  Unknown fields and malformed identifiers fail here, before any
// backend call.
func (q *QuerySet) Filter(c Criteria) (*QuerySet, error) {
	norm, err := normalizeCriteria(c)
	if err != nil {
		return nil, err
	}
	out := q.derive()
	for k, v := range norm {
		out.criteria[k] = v
	}
	return out, nil
}

func (q *QuerySet) FilterBy(field string, values ...string) (*QuerySet, error) {
	return q.Filter(Criteria{field: values})
}

// OrderBy replaces the ordering.  A leading '-' sorts descending.  Ordering
// is a stable in-process sort, so applying the same keys twice changes
// nothing.
func (q *QuerySet) OrderBy(fields ...string) (*QuerySet, error) {
	for _, f := range fields {
		if _, ok := patent.LookupField(strings.TrimPrefix(f, "-")); !ok {
			return nil, errors.New(errors.ErrCodeUnknownOrderField, "unknown ordering field").WithDetail(f)
		}
	}
	out := q.derive()
	out.order = append([]string(nil), fields...)
	if resolved, done := q.buf.source(); done {
		out.buf.commit(resolved, ordered(resolved, out.order))
	}
	return out, nil
}

// SetOptions returns a QuerySet with merged options.  The receiver is not
// modified.
func (q *QuerySet) SetOptions(opts ...Option) *QuerySet {
	out := q.derive()
	for _, o := range opts {
		o(&out.opts)
	}
	return out
}

// Limit caps the number of records yielded.  The result buffer is shared.
func (q *QuerySet) Limit(n int) *QuerySet {
	c := *q
	if n < 0 {
		n = 0
	}
	c.limit = n
	return &c
}

// Offset skips the first n records.  The result buffer is shared.
func (q *QuerySet) Offset(n int) *QuerySet {
	c := *q
	if n < 0 {
		n = 0
	}
	c.offset = n
	return &c
}

func (q *QuerySet) AllowedFilters() []string {
	return patent.FilterableFields()
}

// Criteria returns a copy of the normalized criteria.
func (q *QuerySet) Criteria() Criteria {
	out := make(Criteria, len(q.criteria))
	for k, v := range q.criteria {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Evaluation
// ─────────────────────────────────────────────────────────────────────────────

// All returns every record in order.  On partial resolution the resolved
// records are returned together with a *PartialResolutionError.
func (q *QuerySet) All(ctx context.Context) ([]*patent.Application, error) {
	recs, err := q.materialize(ctx)
	return q.window(recs), err
}

func (q *QuerySet) Len(ctx context.Context) (int, error) {
	recs, err := q.All(ctx)
	return len(recs), err
}

// Index returns the i-th record; negative i counts from the end.
func (q *QuerySet) Index(ctx context.Context, i int) (*patent.Application, error) {
	recs, err := q.All(ctx)
	if err != nil && !errors.IsPartialResolution(err) {
		return nil, err
	}
	n := len(recs)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, errors.New(errors.ErrCodeIndexOutOfRange, "index out of range").
			WithDetail(fmt.Sprintf("index=%d len=%d", i, n))
	}
	return recs[i], nil
}

// Get resolves exactly one record.  Positional ids are application numbers
// added to the current criteria.
func (q *QuerySet) Get(ctx context.Context, ids ...string) (*patent.Application, error) {
	target := q
	if len(ids) > 0 {
		var err error
		if target, err = q.FilterBy(string(patent.ClassApplication), ids...); err != nil {
			return nil, err
		}
	}
	return target.single(ctx)
}

func (q *QuerySet) GetBy(ctx context.Context, c Criteria) (*patent.Application, error) {
	target, err := q.Filter(c)
	if err != nil {
		return nil, err
	}
	return target.single(ctx)
}

func (q *QuerySet) single(ctx context.Context) (*patent.Application, error) {
	recs, err := q.All(ctx)
	if err != nil {
		return nil, err
	}
	switch len(recs) {
	case 0:
		return nil, errors.New(errors.ErrCodeRecordNotFound, "no record matched").WithDetail(q.describe())
	case 1:
		return recs[0], nil
	default:
		return nil, errors.New(errors.ErrCodeMultipleRecords, "multiple records matched").
			WithDetail(fmt.Sprintf("%s matched=%d", q.describe(), len(recs)))
	}
}

// ValuesList projects fields from every record.
func (q *QuerySet) ValuesList(ctx context.Context, fields ...string) ([][]any, error) {
	if len(fields) == 0 {
		return nil, errors.Validation("values list needs at least one field")
	}
	for _, f := range fields {
		if _, ok := patent.LookupField(f); !ok {
			return nil, errors.New(errors.ErrCodeUnknownFilterField, "unknown field").WithDetail(f)
		}
	}
	recs, err := q.All(ctx)
	if err != nil && !errors.IsPartialResolution(err) {
		return nil, err
	}
	rows := make([][]any, len(recs))
	for i, app := range recs {
		row := make([]any, len(fields))
		for j, f := range fields {
			row[j], _ = app.Value(f)
		}
		rows[i] = row
	}
	return rows, err
}

// FlatValues projects a single field.
func (q *QuerySet) FlatValues(ctx context.Context, field string) ([]any, error) {
	rows, err := q.ValuesList(ctx, field)
	if rows == nil {
		return nil, err
	}
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r[0]
	}
	return out, err
}

func (q *QuerySet) window(recs []*patent.Application) []*patent.Application {
	if q.offset >= len(recs) {
		if recs == nil {
			return nil
		}
		return []*patent.Application{}
	}
	recs = recs[q.offset:]
	if q.limit > 0 && q.limit < len(recs) {
		recs = recs[:q.limit]
	}
	return recs
}

func (q *QuerySet) describe() string {
	keys := make([]string, 0, len(q.criteria))
	for k := range q.criteria {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strings.Join(q.criteria[k], "|")
	}
	return strings.Join(parts, " ")
}

// ─────────────────────────────────────────────────────────────────────────────
// Resolution
// ─────────────────────────────────────────────────────────────────────────────

// subResolution is one backend call of a plan.
type subResolution struct {
	req    patent.FetchRequest
	labels []string
}

// plan splits the criteria into one request per identifier class chunk,
// each carrying every non-identifier criterion.
func (q *QuerySet) plan() []subResolution {
	attrs := make(map[string][]string)
	for k, v := range q.criteria {
		if d, _ := patent.LookupField(k); !d.IsIdentifier() {
			attrs[k] = v
		}
	}

	var plan []subResolution
	for _, class := range patent.IdentifierClasses {
		values := q.criteria[string(class)]
		for start := 0; start < len(values); start += q.m.chunkSize {
			end := min(start+q.m.chunkSize, len(values))
			chunk := values[start:end]
			labels := make([]string, len(chunk))
			for i, v := range chunk {
				labels[i] = string(class) + "=" + v
			}
			plan = append(plan, subResolution{
				req: patent.FetchRequest{
					Class:    class,
					Values:   chunk,
					Filters:  attrs,
					Sort:     q.order,
					ForceXML: q.opts.forceXML,
				},
				labels: labels,
			})
		}
	}
	if len(plan) == 0 {
		plan = append(plan, subResolution{
			req:    patent.FetchRequest{Filters: attrs, Sort: q.order, ForceXML: q.opts.forceXML},
			labels: []string{q.describe()},
		})
	}
	return plan
}

// materialize returns the buffered results, resolving them first if needed.
// Only a complete resolution is committed.
func (q *QuerySet) materialize(ctx context.Context) ([]*patent.Application, error) {
	if recs, done := q.buf.get(); done {
		return recs, nil
	}
	if len(q.criteria) == 0 {
		return nil, errors.Validation("query has no criteria").WithDetail("allowed: " + strings.Join(patent.FilterableFields(), ", "))
	}

	timer := prometheus.StartQueryResolution(q.m.metrics)
	log := logging.FromContext(ctx, q.m.logger).With(logging.String("resolution_id", uuid.NewString()))
	resolved, err := q.resolve(ctx, log)
	recs := ordered(resolved, q.order)
	var partial *PartialResolutionError
	if errors.As(err, &partial) {
		partial.Records = recs
	}

	outcome := "complete"
	switch {
	case err == nil:
		q.buf.commit(resolved, recs)
	case ctx.Err() != nil && err == ctx.Err():
		outcome = "canceled"
	case errors.IsPartialResolution(err):
		outcome = "partial"
	default:
		outcome = "failed"
	}
	elapsed := prometheus.RecordQueryResolution(q.m.metrics, timer, outcome, len(recs))
	log.Info("query resolved",
		logging.String("criteria", q.describe()),
		logging.String("outcome", outcome),
		logging.Int("records", len(recs)),
		logging.Duration("duration", elapsed),
	)
	return recs, err
}

// resolve returns the merged records in resolution order; ordering is applied
// by the caller.
func (q *QuerySet) resolve(ctx context.Context, log logging.Logger) ([]*patent.Application, error) {
	plan := q.plan()

	var (
		staged   []patent.RawRecord
		seen     = make(map[string]bool)
		failed   []string
		firstErr error
		failures int
	)
	for _, sub := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := q.m.store.Fetch(ctx, sub.req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Warn("sub-resolution failed",
				logging.String("class", string(sub.req.Class)),
				logging.Int("values", len(sub.req.Values)),
				logging.Err(err),
			)
			failures++
			failed = append(failed, sub.labels...)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, rec := range recs {
			id := rec.Field(string(patent.ClassApplication))
			if id == "" {
				log.Warn("dropping record without appl_id")
				continue
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			staged = append(staged, rec)
		}
	}
	if failures == len(plan) {
		return nil, firstErr
	}

	apps := make([]*patent.Application, 0, len(staged))
	for _, rec := range staged {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		app, err := q.hydrate(ctx, rec)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			id := rec.Field(string(patent.ClassApplication))
			log.Warn("record could not be mapped", logging.String("appl_id", id), logging.Err(err))
			failed = append(failed, string(patent.ClassApplication)+"="+id)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		apps = append(apps, app)
	}

	if len(failed) > 0 {
		return apps, newPartialResolutionError(failed, apps, firstErr)
	}
	return apps, nil
}

// hydrate loads any sub-collection the backend left out, then maps the record.
func (q *QuerySet) hydrate(ctx context.Context, rec patent.RawRecord) (*patent.Application, error) {
	for _, rel := range rec.MissingRelations() {
		items, err := q.m.store.FetchRelated(ctx, rec, rel)
		if err != nil {
			return nil, err
		}
		rec = rec.WithRelation(rel, items)
	}
	return patent.NewApplication(rec)
}

// ─────────────────────────────────────────────────────────────────────────────
// Ordering
// ─────────────────────────────────────────────────────────────────────────────

// ordered returns a sorted copy of recs, leaving recs in resolution order.
func ordered(recs []*patent.Application, keys []string) []*patent.Application {
	out := append([]*patent.Application(nil), recs...)
	sortApplications(out, keys)
	return out
}

// sortApplications sorts stably by keys.  Unset values sort last in either
// direction.
func sortApplications(apps []*patent.Application, keys []string) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(apps, func(i, j int) bool {
		for _, k := range keys {
			desc := strings.HasPrefix(k, "-")
			name := strings.TrimPrefix(k, "-")
			a, _ := apps[i].Value(name)
			b, _ := apps[j].Value(name)
			switch {
			case a == nil && b == nil:
				continue
			case a == nil:
				return false
			case b == nil:
				return true
			}
			c := compare(a, b)
			if c == 0 {
				continue
			}
			if desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compare(a, b any) int {
	switch av := a.(type) {
	case patent.Date:
		if bv, ok := b.(patent.Date); ok {
			return av.Time.Compare(bv.Time)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

//Personal.AI order the ending
