package uspto

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/turtacn/KeyIP-PatentClient/internal/config"
	"github.com/turtacn/KeyIP-PatentClient/internal/domain/lifecycle"
	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/cache"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// Store is the examination-data record store.  Search answers and bulk
// packages are cached under a fingerprint of the search parameters; a cached
// entry that no longer decodes is discarded and fetched again.
type Store struct {
	client *Client
	cache  cache.Cache
	cfg    config.USPTOConfig
	logger logging.Logger
	group  singleflight.Group
}

// NewStore wires a store.  c may be cache.Nop{} to disable caching.
func NewStore(client *Client, c cache.Cache, cfg config.USPTOConfig, logger logging.Logger) *Store {
	if c == nil {
		c = cache.Nop{}
	}
	return &Store{
		client: client,
		cache:  c,
		cfg:    cfg,
		logger: logger.Named("uspto-store"),
	}
}

var (
	_ patent.RecordStore         = (*Store)(nil)
	_ lifecycle.AncestorResolver = (*Store)(nil)
)

// Fetch resolves one request.  JSON search documents are used only when
// req.ForceXML is unset and the hit count is within the JSON result limit.
//
// Identical concurrent requests share a single upstream round trip.  The
// shared call is detached from the caller that started it, so a caller that
// gives up only stops waiting; upstream calls stay bounded by the HTTP and
// package timeouts.
func (s *Store) Fetch(ctx context.Context, req patent.FetchRequest) ([]patent.RawRecord, error) {
	params := buildSearchParams(req)
	key := fingerprint(params)

	ch := s.group.DoChan(fmt.Sprintf("%s/%t", key, req.ForceXML), func() (interface{}, error) {
		return s.fetch(context.WithoutCancel(ctx), params, key, req.ForceXML)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("joined in-flight fetch", logging.String("key", key))
		}
		return res.Val.([]patent.RawRecord), nil
	}
}

func (s *Store) fetch(ctx context.Context, params searchParams, key string, forceXML bool) ([]patent.RawRecord, error) {
	result, err := s.search(ctx, params, key)
	if err != nil {
		return nil, err
	}
	if result.NumFound == 0 {
		return []patent.RawRecord{}, nil
	}
	if !forceXML && result.NumFound <= s.cfg.JSONResultLimit {
		return result.Docs, nil
	}
	if result.QueryID == "" {
		return nil, parseError("search response has no queryId").WithDetail("bulk package needed")
	}
	return s.packaged(ctx, result.QueryID, key)
}

func (s *Store) search(ctx context.Context, params searchParams, key string) (searchResult, error) {
	entry := key + ".json"
	if data, err := s.cache.Get(ctx, entry); err == nil {
		if res, err := decodeSearch(data); err == nil {
			return res, nil
		}
		s.logger.Warn("discarding corrupt cache entry", logging.String("key", entry))
	}

	data, err := s.client.Search(ctx, params)
	if err != nil {
		return searchResult{}, err
	}
	res, err := decodeSearch(data)
	if err != nil {
		return searchResult{}, err
	}
	_ = s.cache.Put(ctx, entry, data)
	return res, nil
}

func (s *Store) packaged(ctx context.Context, queryID, key string) ([]patent.RawRecord, error) {
	entry := key + ".zip"
	if data, err := s.cache.Get(ctx, entry); err == nil {
		if recs, err := decodePackage(data); err == nil {
			return recs, nil
		}
		s.logger.Warn("discarding corrupt cache entry", logging.String("key", entry))
	}

	data, err := s.preparePackage(ctx, queryID)
	if err != nil {
		return nil, err
	}
	recs, err := decodePackage(data)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Put(ctx, entry, data)
	return recs, nil
}

// preparePackage requests the package, polls until the job completes and
// downloads it.  The whole flow is bounded by the package timeout.
func (s *Store) preparePackage(ctx context.Context, queryID string) ([]byte, error) {
	if err := s.client.RequestPackage(ctx, queryID); err != nil {
		return nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, s.cfg.PackageTimeout)
	defer cancel()

	ticker := time.NewTicker(s.cfg.PackagePollInterval)
	defer ticker.Stop()

	for {
		status, err := s.client.PackageStatus(pctx, queryID)
		if err != nil {
			return nil, s.packageError(ctx, pctx, queryID, err)
		}
		switch status {
		case jobCompleted:
			data, err := s.client.Download(ctx, queryID)
			if err != nil {
				return nil, err
			}
			s.logger.Info("bulk package downloaded", logging.String("query_id", queryID), logging.Int("bytes", len(data)))
			return data, nil
		case jobFailed:
			return nil, errors.New(errors.ErrCodePackageFailed, "bulk package preparation failed").WithDetail(queryID)
		}
		s.logger.Debug("bulk package pending", logging.String("query_id", queryID), logging.String("status", status))

		select {
		case <-pctx.Done():
			return nil, s.packageError(ctx, pctx, queryID, pctx.Err())
		case <-ticker.C:
		}
	}
}

// packageError tells caller cancellation apart from the package deadline.
func (s *Store) packageError(ctx, pctx context.Context, queryID string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if pctx.Err() != nil {
		return errors.New(errors.ErrCodeSourceTimeout, "bulk package not ready before timeout").
			WithDetail(fmt.Sprintf("query_id=%s timeout=%s", queryID, s.cfg.PackageTimeout))
	}
	return err
}

// FetchRelated returns rel for rec, reloading the record from the bulk
// package when rec was decoded without it.
func (s *Store) FetchRelated(ctx context.Context, rec patent.RawRecord, rel patent.Relation) ([]map[string]string, error) {
	if rec.HasRelation(rel) {
		return rec.Collection(rel), nil
	}
	full, err := s.byApplID(ctx, rec.Field(string(patent.ClassApplication)), true)
	if err != nil {
		return nil, err
	}
	items := full.Collection(rel)
	if items == nil {
		items = []map[string]string{}
	}
	return items, nil
}

// ResolveParents loads an application by number and returns its parent links.
func (s *Store) ResolveParents(ctx context.Context, applID string) ([]patent.Relationship, error) {
	rec, err := s.byApplID(ctx, applID, s.cfg.ForceXML)
	if err != nil {
		return nil, err
	}
	app, err := patent.NewApplication(rec)
	if err != nil {
		return nil, err
	}
	return app.Parents(), nil
}

func (s *Store) byApplID(ctx context.Context, applID string, forceXML bool) (patent.RawRecord, error) {
	if applID == "" {
		return patent.RawRecord{}, errors.Validation("record has no appl_id")
	}
	recs, err := s.Fetch(ctx, patent.FetchRequest{
		Class:    patent.ClassApplication,
		Values:   []string{applID},
		ForceXML: forceXML,
	})
	if err != nil {
		return patent.RawRecord{}, err
	}
	for _, r := range recs {
		if r.Field(string(patent.ClassApplication)) == applID {
			return r, nil
		}
	}
	return patent.RawRecord{}, errors.New(errors.ErrCodeRecordNotFound, "no record matched").
		WithDetail("appl_id=" + applID)
}

//Personal.AI order the ending
