package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// ApplicationsClient wraps the /api/v1/applications endpoints.
type ApplicationsClient struct {
	client *Client
}

// ListQuery mirrors the server's query parameters.  Values of one field
// are ORed; fields are ANDed.
type ListQuery struct {
	Criteria map[string][]string
	OrderBy  []string
	Limit    int
	Offset   int
	ForceXML bool
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	for field, vals := range q.Criteria {
		v.Set(field, strings.Join(vals, ","))
	}
	if len(q.OrderBy) > 0 {
		v.Set("order_by", strings.Join(q.OrderBy, ","))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.ForceXML {
		v.Set("force_xml", "true")
	}
	return v
}

// ListResult is the body of a list or projection answer.  Failed names the
// identifiers that did not resolve.
type ListResult struct {
	Count   int              `json:"count"`
	Records []map[string]any `json:"records,omitempty"`
	Fields  []string         `json:"fields,omitempty"`
	Rows    [][]any          `json:"rows,omitempty"`
	Failed  []string         `json:"failed,omitempty"`
}

// Expiration is the computed term of one application.  Dates are
// YYYY-MM-DD strings.
type Expiration struct {
	ApplID                  string `json:"appl_id"`
	ParentApplID            string `json:"parent_appl_id"`
	ParentAppFilingDate     string `json:"parent_app_filing_date"`
	ParentRelationship      string `json:"parent_relationship"`
	TwentyYearTerm          string `json:"20_year_term"`
	PtaOrPte                int    `json:"pta_or_pte"`
	ExtendedTerm            string `json:"extended_term"`
	TerminalDisclaimerFiled bool   `json:"terminal_disclaimer_filed"`
}

// List returns the matching records.  On a partial answer both the result
// and an APIError with IsPartial set are returned.
func (a *ApplicationsClient) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	var out ListResult
	if err := a.client.get(ctx, "/api/v1/applications", q.values(), &out); err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.IsPartial() {
			return &out, err
		}
		return nil, err
	}
	return &out, nil
}

// Values returns one row per matching record with the named fields.
func (a *ApplicationsClient) Values(ctx context.Context, q ListQuery, fields ...string) (*ListResult, error) {
	v := q.values()
	v.Set("fields", strings.Join(fields, ","))
	var out ListResult
	if err := a.client.get(ctx, "/api/v1/applications", v, &out); err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.IsPartial() {
			return &out, err
		}
		return nil, err
	}
	return &out, nil
}

// Get returns the single application with applID.
func (a *ApplicationsClient) Get(ctx context.Context, applID string) (map[string]any, error) {
	var out map[string]any
	if err := a.client.get(ctx, "/api/v1/applications/"+url.PathEscape(applID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ApplicationsClient) Expiration(ctx context.Context, applID string) (*Expiration, error) {
	var out Expiration
	if err := a.client.get(ctx, "/api/v1/applications/"+url.PathEscape(applID)+"/expiration", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fields returns the filterable field names.
func (a *ApplicationsClient) Fields(ctx context.Context) ([]string, error) {
	var out struct {
		Fields []string `json:"fields"`
	}
	if err := a.client.get(ctx, "/api/v1/fields", nil, &out); err != nil {
		return nil, err
	}
	return out.Fields, nil
}

//Personal.AI order the ending
