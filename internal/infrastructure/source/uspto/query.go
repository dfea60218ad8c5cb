package uspto

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
)

// queryFields is the field list the search service matches query text against.
const queryFields = "appEarlyPubNumber applId appLocation appType appStatus_txt appConfrNumber appCustNumber " +
	"appGrpArtNumber appCls appSubCls appEntityStatus_txt patentNumber patentTitle primaryInventor " +
	"firstNamedApplicant appExamName appExamPrefrdName appAttrDockNumber appPCTNumber appIntlPubNumber " +
	"wipoEarlyPubNumber pctAppType firstInventorFile appClsSubCls rankAndInventorsList"

var plainTerm = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// searchParams is the body of a search request.  Field order is fixed, so
// the JSON encoding doubles as the cache fingerprint input.
type searchParams struct {
	QF         string `json:"qf"`
	FL         string `json:"fl"`
	SearchText string `json:"searchText"`
	Sort       string `json:"sort"`
	Facet      string `json:"facet"`
	MM         string `json:"mm,omitempty"`
}

// buildSearchParams renders a fetch request as search text.  Each criterion
// becomes field:(a OR b); criteria are ANDed.  The minimum-match parameter
// is dropped as soon as any criterion carries more than one value.
func buildSearchParams(req patent.FetchRequest) searchParams {
	criteria := req.Criteria()
	names := make([]string, 0, len(criteria))
	for name := range criteria {
		names = append(names, name)
	}
	sort.Strings(names)

	clauses := make([]string, 0, len(names))
	multi := false
	for _, name := range names {
		values := criteria[name]
		if len(values) == 0 {
			continue
		}
		if len(values) > 1 {
			multi = true
		}
		terms := make([]string, len(values))
		for i, v := range values {
			terms[i] = quoteTerm(v)
		}
		clauses = append(clauses, wireName(name)+":("+strings.Join(terms, " OR ")+")")
	}
	text := strings.Join(clauses, " AND ")

	p := searchParams{
		QF:         queryFields,
		FL:         "*",
		SearchText: text,
		Sort:       sortClause(req.Sort),
		Facet:      "false",
	}
	if !multi {
		p.MM = "100%"
		if _, ok := criteria[string(patent.ClassPublication)]; ok {
			p.MM = "90%"
		}
	}
	return p
}

func quoteTerm(v string) string {
	if plainTerm.MatchString(v) {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

// sortClause renders ordering keys; a leading '-' sorts descending.
func sortClause(keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		dir := "asc"
		if strings.HasPrefix(k, "-") {
			dir = "desc"
			k = k[1:]
		}
		parts = append(parts, wireName(k)+" "+dir)
	}
	return strings.Join(parts, ", ")
}

// fingerprint derives the cache key stem of a search.
func fingerprint(p searchParams) string {
	b, _ := json.Marshal(p)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

//Personal.AI order the ending
