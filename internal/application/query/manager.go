// Package query is the lazy, chainable query engine over a patent.RecordStore.
// A QuerySet is an immutable value: every refinement returns a new QuerySet
// and nothing is fetched until results are asked for.
package query

import (
	"context"
	"strings"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// DefaultChunkSize bounds the identifier values sent in one backend call.
const DefaultChunkSize = 25

// Criteria maps a field to its accepted values: OR within a field, AND
// across fields.
type Criteria map[string][]string

// Option adjusts the resolution options of a QuerySet.
type Option func(*options)

type options struct {
	forceXML bool
}

// WithForceXML selects the bulk XML representation regardless of result size.
func WithForceXML(force bool) Option {
	return func(o *options) { o.forceXML = force }
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

func WithLogger(l logging.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

func WithMetrics(mt *prometheus.AppMetrics) ManagerOption {
	return func(m *Manager) { m.metrics = mt }
}

func WithChunkSize(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.chunkSize = n
		}
	}
}

// WithDefaults sets the options every new QuerySet starts from.
func WithDefaults(opts ...Option) ManagerOption {
	return func(m *Manager) {
		for _, o := range opts {
			o(&m.defaults)
		}
	}
}

// Manager is the entry point for application queries.
type Manager struct {
	store     patent.RecordStore
	logger    logging.Logger
	metrics   *prometheus.AppMetrics
	chunkSize int
	defaults  options
}

func NewManager(store patent.RecordStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:     store,
		logger:    logging.NewNopLogger(),
		chunkSize: DefaultChunkSize,
	}
	for _, o := range opts {
		o(m)
	}
	m.logger = m.logger.Named("query")
	return m
}

// Query returns an empty QuerySet.  It must be filtered before it resolves.
func (m *Manager) Query() *QuerySet {
	return &QuerySet{m: m, criteria: Criteria{}, opts: m.defaults, buf: &buffer{}}
}

func (m *Manager) Filter(c Criteria) (*QuerySet, error) {
	return m.Query().Filter(c)
}

func (m *Manager) FilterBy(field string, values ...string) (*QuerySet, error) {
	return m.Query().FilterBy(field, values...)
}

// Get resolves exactly one application by application number.
func (m *Manager) Get(ctx context.Context, ids ...string) (*patent.Application, error) {
	return m.Query().Get(ctx, ids...)
}

func (m *Manager) GetBy(ctx context.Context, c Criteria) (*patent.Application, error) {
	return m.Query().GetBy(ctx, c)
}

func (m *Manager) AllowedFilters() []string {
	return patent.FilterableFields()
}

// SplitValues turns one raw criterion value from a command line or URL into
// its alternatives.  Commas separate alternatives only for identifier fields,
// and only when every part is an identifier on its own: "9,402,813" stays one
// patent number and text such as "METHOD, APPARATUS" stays whole.
func SplitValues(field, raw string) []string {
	raw = strings.TrimSpace(raw)
	whole := []string{raw}
	if raw == "" {
		whole = nil
	}
	d, ok := patent.LookupField(field)
	if !ok || !d.IsIdentifier() || !strings.Contains(raw, ",") {
		return whole
	}
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		if _, err := patent.CanonicalIdentifier(d.Identifier, p); err != nil {
			return whole
		}
		parts = append(parts, p)
	}
	return parts
}

// normalizeCriteria validates c and rewrites its values canonically.
// Identifier values are canonicalized; dates become YYYY-MM-DD.
func normalizeCriteria(c Criteria) (Criteria, error) {
	out := make(Criteria, len(c))
	for field, values := range c {
		d, ok := patent.LookupField(field)
		if !ok || !d.Filterable {
			return nil, errors.New(errors.ErrCodeUnknownFilterField, "unknown filter field").
				WithDetail(field + "; allowed: " + strings.Join(patent.FilterableFields(), ", "))
		}
		if len(values) == 0 {
			return nil, errors.Validation("filter has no values").WithDetail(field)
		}
		norm := make([]string, 0, len(values))
		seen := make(map[string]bool, len(values))
		for _, raw := range values {
			v, err := normalizeValue(d, raw)
			if err != nil {
				return nil, err
			}
			if !seen[v] {
				seen[v] = true
				norm = append(norm, v)
			}
		}
		out[field] = norm
	}
	return out, nil
}

func normalizeValue(d patent.FieldDescriptor, raw string) (string, error) {
	if d.IsIdentifier() {
		return patent.CanonicalIdentifier(d.Identifier, raw)
	}
	v, ok := patent.NormalizeValue(d.Kind, raw)
	if !ok {
		return "", errors.Validation("invalid filter value").WithDetail(d.Name + "=" + raw)
	}
	return v, nil
}

//Personal.AI order the ending
