package uspto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	pkgerrors "github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

func TestDecodeSearch(t *testing.T) {
	res, err := decodeSearch([]byte(searchBody(1, "q-1", docJSON)))
	require.NoError(t, err)

	assert.Equal(t, "q-1", res.QueryID)
	assert.Equal(t, 1, res.NumFound)
	require.Len(t, res.Docs, 1)

	rec := res.Docs[0]
	assert.Equal(t, patent.FormatJSON, rec.Format)
	assert.Equal(t, "14095073", rec.Field("appl_id"))
	assert.Equal(t, "2013-11-20", rec.Field("app_filing_date"))
	assert.Equal(t, "159", rec.Field("total_pto_days"))
	assert.Equal(t, "VINSON & ELKINS L.L.P.", rec.Field("corr_addr_name_line_one"))
	assert.NotContains(t, rec.Fields, "unknownField")
	assert.Empty(t, rec.MissingRelations())
	assert.Len(t, rec.Collection(patent.RelationTransactions), 2)
	assert.Equal(t, "13457878", rec.Collection(patent.RelationParents)[0]["claim_application_number_text"])
}

func TestDecodeSearch_Errors(t *testing.T) {
	_, err := decodeSearch([]byte(`{not json`))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeSourceParseError))

	_, err = decodeSearch([]byte(`{"queryResults":{}}`))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeSourceParseError))
}

func TestDecodeSearch_MissingRelationsStayMissing(t *testing.T) {
	res, err := decodeSearch([]byte(searchBody(1, "q", simpleDoc("12345678", "Widget"))))
	require.NoError(t, err)
	assert.Equal(t, patent.Relations, res.Docs[0].MissingRelations())
}

func TestJobStatus(t *testing.T) {
	s, err := jobStatus([]byte(`{"jobStatus":"COMPLETED"}`))
	require.NoError(t, err)
	assert.Equal(t, jobCompleted, s)

	_, err = jobStatus([]byte(`{}`))
	assert.Error(t, err)
	_, err = jobStatus([]byte(`<html>`))
	assert.Error(t, err)
}

func TestDecodePackage(t *testing.T) {
	data := zipOf(t,
		"b.xml", bulkXML(simpleXML("22222222", "Second")),
		"a.xml", bulkXML(docXML, simpleXML("11111111", "First")),
	)
	recs, err := decodePackage(data)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "14095073", recs[0].Field("appl_id"))
	assert.Equal(t, "11111111", recs[1].Field("appl_id"))
	assert.Equal(t, "22222222", recs[2].Field("appl_id"))
	for _, r := range recs {
		assert.Equal(t, patent.FormatXML, r.Format)
	}
}

func TestDecodePackage_Errors(t *testing.T) {
	_, err := decodePackage([]byte("not a zip"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeSourceParseError))

	_, err = decodePackage(zipOf(t, "a.xml", "<PatentBulkData><PatentData><applId>1</applId>"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeSourceParseError))
}

func TestDecodeXML_Empty(t *testing.T) {
	recs, err := decodeXML(strings.NewReader(bulkXML()))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

// Both representations of a record must produce the same application.
func TestJSONAndXMLAgree(t *testing.T) {
	res, err := decodeSearch([]byte(searchBody(1, "q", docJSON)))
	require.NoError(t, err)
	fromXML, err := decodePackage(zipOf(t, "a.xml", bulkXML(docXML)))
	require.NoError(t, err)

	j, x := res.Docs[0], fromXML[0]
	assert.Equal(t, j.Fields, x.Fields)
	assert.Equal(t, j.Related, x.Related)

	ja, err := patent.NewApplication(j)
	require.NoError(t, err)
	xa, err := patent.NewApplication(x)
	require.NoError(t, err)

	jd, xd := ja.AsDict(), xa.AsDict()
	assert.Equal(t, jd, xd)
	assert.Equal(t, 159, ja.PtaPteSummary().TotalDays)
	assert.Equal(t, "is a Continuation of", xa.Parents()[0].Relationship)
}

//Personal.AI order the ending
