package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/KeyIP-PatentClient/internal/application/query"
	"github.com/turtacn/KeyIP-PatentClient/internal/domain/lifecycle"
	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// reserved query parameters; every other parameter is a filter criterion.
const (
	paramOrderBy  = "order_by"
	paramLimit    = "limit"
	paramOffset   = "offset"
	paramFields   = "fields"
	paramForceXML = "force_xml"
)

// ApplicationHandler serves the query and expiration endpoints.
type ApplicationHandler struct {
	manager *query.Manager
	terms   *lifecycle.TermCalculator
	logger  logging.Logger
}

func NewApplicationHandler(manager *query.Manager, terms *lifecycle.TermCalculator, logger logging.Logger) *ApplicationHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ApplicationHandler{manager: manager, terms: terms, logger: logger.Named("http")}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.List)
	rg.GET("/applications/:id", h.Get)
	rg.GET("/applications/:id/expiration", h.Expiration)
	rg.GET("/fields", h.Fields)
}

// ListResponse is the body of a list or projection request.  Failed is
// set, with status 207, when some identifiers did not resolve.
type ListResponse struct {
	Count   int              `json:"count"`
	Records []map[string]any `json:"records,omitempty"`
	Fields  []string         `json:"fields,omitempty"`
	Rows    [][]any          `json:"rows,omitempty"`
	Failed  []string         `json:"failed,omitempty"`
}

// List handles GET /api/v1/applications?appl_id=..&order_by=..&fields=..
// Repeated parameters and comma-separated values are ORed.
func (h *ApplicationHandler) List(c *gin.Context) {
	qs, err := h.querySet(c)
	if err != nil {
		writeAppError(c, err)
		return
	}

	resp := ListResponse{}
	var resErr error
	if raw := c.Query(paramFields); raw != "" {
		resp.Fields = splitList([]string{raw})
		resp.Rows, resErr = qs.ValuesList(c.Request.Context(), resp.Fields...)
		resp.Count = len(resp.Rows)
	} else {
		var apps []*patent.Application
		apps, resErr = qs.All(c.Request.Context())
		resp.Records = make([]map[string]any, len(apps))
		for i, a := range apps {
			resp.Records[i] = a.AsDict()
		}
		resp.Count = len(apps)
	}

	var partial *query.PartialResolutionError
	switch {
	case resErr == nil:
		c.JSON(http.StatusOK, resp)
	case errors.As(resErr, &partial):
		resp.Failed = partial.Failed
		h.logger.Warn("partial resolution served",
			logging.Strings("failed", partial.Failed),
			logging.Int("records", resp.Count))
		c.JSON(http.StatusMultiStatus, resp)
	default:
		writeAppError(c, resErr)
	}
}

// Get handles GET /api/v1/applications/:id.
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.get(c)
	if err != nil {
		writeAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.AsDict())
}

// Expiration handles GET /api/v1/applications/:id/expiration.
func (h *ApplicationHandler) Expiration(c *gin.Context) {
	app, err := h.get(c)
	if err != nil {
		writeAppError(c, err)
		return
	}
	exp, err := h.terms.Compute(c.Request.Context(), app)
	if err != nil {
		writeAppError(c, err)
		return
	}
	body := exp.AsDict()
	body["appl_id"] = app.ApplID
	c.JSON(http.StatusOK, body)
}

// Fields handles GET /api/v1/fields.
func (h *ApplicationHandler) Fields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": h.manager.AllowedFilters()})
}

func (h *ApplicationHandler) get(c *gin.Context) (*patent.Application, error) {
	qs := h.manager.Query()
	if forceXML(c) {
		qs = qs.SetOptions(query.WithForceXML(true))
	}
	return qs.Get(c.Request.Context(), c.Param("id"))
}

func (h *ApplicationHandler) querySet(c *gin.Context) (*query.QuerySet, error) {
	criteria := query.Criteria{}
	for key, values := range c.Request.URL.Query() {
		switch key {
		case paramOrderBy, paramLimit, paramOffset, paramFields, paramForceXML:
			continue
		}
		for _, v := range values {
			criteria[key] = append(criteria[key], query.SplitValues(key, v)...)
		}
	}
	qs, err := h.manager.Filter(criteria)
	if err != nil {
		return nil, err
	}
	if raw := c.Query(paramOrderBy); raw != "" {
		if qs, err = qs.OrderBy(splitList([]string{raw})...); err != nil {
			return nil, err
		}
	}
	limit, err := intParam(c, paramLimit)
	if err != nil {
		return nil, err
	}
	offset, err := intParam(c, paramOffset)
	if err != nil {
		return nil, err
	}
	if forceXML(c) {
		qs = qs.SetOptions(query.WithForceXML(true))
	}
	return qs.Offset(offset).Limit(limit), nil
}

func forceXML(c *gin.Context) bool {
	v, _ := strconv.ParseBool(c.Query(paramForceXML))
	return v
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.Validation("invalid " + name).WithDetail(raw)
	}
	return n, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

//Personal.AI order the ending
