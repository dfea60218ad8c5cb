package uspto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
)

func TestWireName(t *testing.T) {
	cases := map[string]string{
		"appl_id":              "applId",
		"app_early_pub_number": "appEarlyPubNumber",
		"a_delay":              "aDelay",
		"pta_pte_tran_history": "ptaPteTranHistory",
		"app_pct_number":       "appPCTNumber",
		"corr_addr_cust_no":    "corrAddrCustNo",
	}
	for in, want := range cases {
		assert.Equal(t, want, wireName(in), in)
	}
}

func TestBuildSearchParams_SingleValue(t *testing.T) {
	p := buildSearchParams(patent.FetchRequest{
		Class:  patent.ClassApplication,
		Values: []string{"14095073"},
	})

	assert.Equal(t, "applId:(14095073)", p.SearchText)
	assert.Equal(t, "100%", p.MM)
	assert.Equal(t, "*", p.FL)
	assert.Equal(t, "false", p.Facet)
	assert.Equal(t, queryFields, p.QF)
	assert.Empty(t, p.Sort)
}

func TestBuildSearchParams_PublicationLowersMinimumMatch(t *testing.T) {
	p := buildSearchParams(patent.FetchRequest{
		Class:  patent.ClassPublication,
		Values: []string{"US20060127129A1"},
	})

	assert.Equal(t, "appEarlyPubNumber:(US20060127129A1)", p.SearchText)
	assert.Equal(t, "90%", p.MM)
}

func TestBuildSearchParams_MultiValueDropsMinimumMatch(t *testing.T) {
	p := buildSearchParams(patent.FetchRequest{
		Class:   patent.ClassPatent,
		Values:  []string{"6095661", "6095662"},
		Filters: map[string][]string{"app_type": {"Utility"}},
		Sort:    []string{"-app_filing_date", "patent_title"},
	})

	assert.Equal(t, "appType:(Utility) AND patentNumber:(6095661 OR 6095662)", p.SearchText)
	assert.Empty(t, p.MM)
	assert.Equal(t, "appFilingDate desc, patentTitle asc", p.Sort)
}

func TestBuildSearchParams_QuotesSpecialTerms(t *testing.T) {
	p := buildSearchParams(patent.FetchRequest{
		Class:  patent.ClassApplication,
		Values: []string{"PCT/US03/31405"},
	})
	assert.Equal(t, `applId:("PCT/US03/31405")`, p.SearchText)

	p = buildSearchParams(patent.FetchRequest{Filters: map[string][]string{"first_named_applicant": {"Acme Corp"}}})
	assert.Equal(t, `firstNamedApplicant:("Acme Corp")`, p.SearchText)
}

func TestFingerprint(t *testing.T) {
	a := buildSearchParams(patent.FetchRequest{Class: patent.ClassApplication, Values: []string{"14095073"}})
	b := buildSearchParams(patent.FetchRequest{Class: patent.ClassApplication, Values: []string{"14095073"}})
	c := buildSearchParams(patent.FetchRequest{Class: patent.ClassApplication, Values: []string{"14095074"}})

	assert.Equal(t, fingerprint(a), fingerprint(b))
	assert.NotEqual(t, fingerprint(a), fingerprint(c))
	assert.Len(t, fingerprint(a), 64)
}

//Personal.AI order the ending
