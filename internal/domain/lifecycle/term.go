// Package lifecycle derives statutory term and expiration figures from a
// prosecution record: the 20-year base anchored on the earliest qualifying
// non-provisional filing, extended by the application's own PTA/PTE days.
package lifecycle

import (
	"context"
	"time"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

const (
	// StatutoryTermYears is the US utility term measured from the earliest
	// non-provisional filing.
	StatutoryTermYears = 20

	// TerminalDisclaimerCode is the transaction code of a recorded terminal
	// disclaimer.
	TerminalDisclaimerCode = "DIST"

	defaultMaxDepth = 8
)

// nonAnchoring lists continuity labels that never anchor the term base.
var nonAnchoring = map[string]bool{
	"Claims Priority from Provisional Application": true,
	"is a Reissue of":                              true,
}

// Anchors reports whether a continuity link can anchor the 20-year term.
func Anchors(r patent.Relationship) bool {
	return !nonAnchoring[r.Relationship]
}

// AncestorResolver loads the parent links of an application that is only
// known by number.
type AncestorResolver interface {
	ResolveParents(ctx context.Context, applID string) ([]patent.Relationship, error)
}

// AncestorResolverFunc adapts a function to AncestorResolver.
type AncestorResolverFunc func(ctx context.Context, applID string) ([]patent.Relationship, error)

func (f AncestorResolverFunc) ResolveParents(ctx context.Context, applID string) ([]patent.Relationship, error) {
	return f(ctx, applID)
}

// Expiration is the term computation result for one application.
type Expiration struct {
	ParentApplID            string
	ParentAppFilingDate     patent.Date
	ParentRelationship      string
	TwentyYearTerm          patent.Date
	PtaOrPte                int
	ExtendedTerm            patent.Date
	TerminalDisclaimerFiled bool
}

// AsDict implements the uniform serialization contract.
func (e *Expiration) AsDict() map[string]any {
	return map[string]any{
		"parent_appl_id":            e.ParentApplID,
		"parent_app_filing_date":    e.ParentAppFilingDate,
		"parent_relationship":       e.ParentRelationship,
		"20_year_term":              e.TwentyYearTerm,
		"pta_or_pte":                e.PtaOrPte,
		"extended_term":             e.ExtendedTerm,
		"terminal_disclaimer_filed": e.TerminalDisclaimerFiled,
	}
}

// SelfRooted reports whether the application anchors its own term.
func (e *Expiration) SelfRooted() bool {
	return e.ParentRelationship == patent.SelfRelationship
}

// Option configures a TermCalculator.
type Option func(*TermCalculator)

// WithAncestorResolver walks continuity beyond the immediate parents, up to
// maxDepth generations.
func WithAncestorResolver(r AncestorResolver, maxDepth int) Option {
	return func(c *TermCalculator) {
		c.resolver = r
		if maxDepth > 0 {
			c.maxDepth = maxDepth
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *TermCalculator) { c.logger = l }
}

func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(c *TermCalculator) { c.metrics = m }
}

// TermCalculator computes Expiration values.  It holds no per-call state and
// is safe for concurrent use.
type TermCalculator struct {
	resolver AncestorResolver
	maxDepth int
	logger   logging.Logger
	metrics  *prometheus.AppMetrics
}

// NewTermCalculator returns a calculator that only considers the parents
// listed on the evaluated record unless WithAncestorResolver is given.
func NewTermCalculator(opts ...Option) *TermCalculator {
	c := &TermCalculator{
		maxDepth: defaultMaxDepth,
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute derives the expiration of app.  The raw extended term is always
// reported; a terminal disclaimer is flagged and never applied as a cap.
func (c *TermCalculator) Compute(ctx context.Context, app *patent.Application) (exp *Expiration, err error) {
	defer func() {
		prometheus.RecordTermComputation(c.metrics, err, exp != nil && exp.SelfRooted())
	}()

	root, err := c.root(ctx, app)
	if err != nil {
		return nil, err
	}
	if root.FilingDate.IsZero() {
		return nil, errors.IncompleteRecord("term anchor has no filing date").
			WithDetail("appl_id=" + app.ApplID + " anchor=" + root.ApplID)
	}

	base := AddYears(root.FilingDate, StatutoryTermYears)
	summary := app.PtaPteSummary()
	days := summary.TotalDays
	if reported, ok := summary.ReportedTotal(); ok && reported != days {
		c.logger.Debug("upstream term adjustment total differs from computed",
			logging.String("appl_id", app.ApplID),
			logging.Int("computed", days),
			logging.Int("reported", reported))
	}

	exp = &Expiration{
		ParentApplID:            root.ApplID,
		ParentAppFilingDate:     root.FilingDate,
		ParentRelationship:      root.Relationship,
		TwentyYearTerm:          base,
		PtaOrPte:                days,
		ExtendedTerm:            base.AddDays(days),
		TerminalDisclaimerFiled: app.HasTransaction(TerminalDisclaimerCode),
	}

	c.logger.Debug("expiration computed",
		logging.String("appl_id", app.ApplID),
		logging.String("anchor", root.ApplID),
		logging.String("relationship", root.Relationship),
		logging.Int("pta_or_pte", days),
		logging.Bool("terminal_disclaimer", exp.TerminalDisclaimerFiled))
	return exp, nil
}

// root picks the earliest-filed anchoring ancestor, or the self link.
func (c *TermCalculator) root(ctx context.Context, app *patent.Application) (patent.Relationship, error) {
	candidates := anchoring(app.Parents())
	if c.resolver != nil {
		walked, err := c.walk(ctx, app.ApplID, candidates)
		if err != nil {
			return patent.Relationship{}, err
		}
		candidates = walked
	}
	if len(candidates) == 0 {
		return app.SelfLink(), nil
	}

	best := -1
	for i, r := range candidates {
		if r.FilingDate.IsZero() {
			return patent.Relationship{}, errors.IncompleteRecord("continuity parent has no filing date").
				WithDetail("appl_id=" + app.ApplID + " parent=" + r.ApplID)
		}
		if best < 0 || r.FilingDate.Before(candidates[best].FilingDate) {
			best = i
		}
	}
	return candidates[best], nil
}

// walk extends the immediate parents breadth-first through each ancestor's
// own anchoring parents.  Already visited applications are skipped, so a
// cyclic chain terminates.  A resolver failure ends that branch only.
func (c *TermCalculator) walk(ctx context.Context, self string, parents []patent.Relationship) ([]patent.Relationship, error) {
	visited := map[string]bool{self: true}
	out := make([]patent.Relationship, 0, len(parents))
	frontier := parents

	for depth := 1; len(frontier) > 0; depth++ {
		var next []patent.Relationship
		for _, r := range frontier {
			if visited[r.ApplID] {
				c.logger.Debug("continuity cycle skipped", logging.String("appl_id", r.ApplID))
				continue
			}
			visited[r.ApplID] = true
			out = append(out, r)

			if depth >= c.maxDepth {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			grand, err := c.resolver.ResolveParents(ctx, r.ApplID)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				c.logger.Warn("ancestor resolution failed",
					logging.String("appl_id", r.ApplID),
					logging.Err(err))
				continue
			}
			next = append(next, anchoring(grand)...)
		}
		frontier = next
	}
	return out, nil
}

func anchoring(links []patent.Relationship) []patent.Relationship {
	out := make([]patent.Relationship, 0, len(links))
	for _, r := range links {
		if Anchors(r) {
			out = append(out, r)
		}
	}
	return out
}

// AddYears shifts d by n calendar years.  February 29 maps to February 28 in
// a non-leap target year instead of rolling into March.
func AddYears(d patent.Date, n int) patent.Date {
	y, m, day := d.Date()
	y += n
	if m == time.February && day == 29 && !isLeap(y) {
		day = 28
	}
	return patent.NewDate(y, m, day)
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

//Personal.AI order the ending
