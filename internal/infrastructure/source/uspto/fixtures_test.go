package uspto

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-PatentClient/internal/config"
)

// docJSON and docXML describe the same application in both upstream formats.
const docJSON = `{
  "applId": "14095073",
  "appFilingDate": "2013-11-20T05:00:00Z",
  "appType": "Utility",
  "appStatus": "Patented Case",
  "appStatusDate": "2015-09-09T04:00:00Z",
  "patentNumber": "9145566",
  "patentIssueDate": "2015-09-29T04:00:00Z",
  "patentTitle": "Device and method for routing data",
  "appExamName": "DOE, JANE",
  "appGrpArtNumber": "2435",
  "appEarlyPubNumber": "US20140082754A1",
  "appEarlyPubDate": "2014-03-20T04:00:00Z",
  "firstNamedApplicant": "Example Networks, Inc.",
  "ptaPteInd": "PTA",
  "totalPtoDays": 159,
  "aDelay": 169,
  "bDelay": 0,
  "cDelay": 0,
  "overlapDelay": 0,
  "ptoDelay": 169,
  "applDelay": 10,
  "ptoAdjustments": 0,
  "corrAddrNameLineOne": "VINSON & ELKINS L.L.P.",
  "corrAddrCity": "HOUSTON",
  "inventors": ["DOE, JOHN"],
  "unknownField": "ignored",
  "transactions": [
    {"recordDate": "2015-09-29T04:00:00Z", "code": "PTAC", "description": "Patent Term Adjustment"},
    {"recordDate": "2013-11-20T05:00:00Z", "code": "IEXX", "description": "Initial Exam Team nn"}
  ],
  "parentContinuity": [
    {"claimApplicationNumberText": "13457878", "applicationNumberText": "14095073", "filingDate": "2012-04-27T04:00:00Z",
     "patentNumberText": "8615454", "applicationStatus": "150", "applicationStatusDescription": "This application is a Continuation of"}
  ],
  "childContinuity": [],
  "foreignPriority": [],
  "ptaPteTranHistory": [
    {"number": 2, "ptaOrPteDate": "2015-09-29T04:00:00Z", "contentsDescription": "Patent Issue Date Used in PTA Calculation", "ptoDays": 0, "applDays": 0, "start": 0},
    {"number": 1, "ptaOrPteDate": "2013-11-20T05:00:00Z", "contentsDescription": "Filing date", "ptoDays": 0, "applDays": 0, "start": 0}
  ],
  "attrnyAddr": [
    {"registrationNo": "52345", "fullName": "SMITH, ALEX", "phoneNum": "713-758-2222", "regStatus": "ACTIVE"}
  ]
}`

const docXML = `<PatentData>
  <applId>14095073</applId>
  <appFilingDate>2013-11-20</appFilingDate>
  <appType>Utility</appType>
  <appStatus>Patented Case</appStatus>
  <appStatusDate>2015-09-09</appStatusDate>
  <patentNumber>9145566</patentNumber>
  <patentIssueDate>2015-09-29</patentIssueDate>
  <patentTitle>Device and method for routing data</patentTitle>
  <appExamName>DOE, JANE</appExamName>
  <appGrpArtNumber>2435</appGrpArtNumber>
  <appEarlyPubNumber>US20140082754A1</appEarlyPubNumber>
  <appEarlyPubDate>2014-03-20</appEarlyPubDate>
  <firstNamedApplicant>Example Networks, Inc.</firstNamedApplicant>
  <ptaPteInd>PTA</ptaPteInd>
  <totalPtoDays>159.0</totalPtoDays>
  <aDelay>169</aDelay>
  <bDelay>0</bDelay>
  <cDelay>0</cDelay>
  <overlapDelay>0</overlapDelay>
  <ptoDelay>169</ptoDelay>
  <applDelay>10</applDelay>
  <ptoAdjustments>0</ptoAdjustments>
  <corrAddrNameLineOne>VINSON &amp; ELKINS L.L.P.</corrAddrNameLineOne>
  <corrAddrCity>HOUSTON</corrAddrCity>
  <transactions>
    <transaction><recordDate>2015-09-29</recordDate><code>PTAC</code><description>Patent Term Adjustment</description></transaction>
    <transaction><recordDate>2013-11-20</recordDate><code>IEXX</code><description>Initial Exam Team nn</description></transaction>
  </transactions>
  <parentContinuity>
    <continuity>
      <claimApplicationNumberText>13457878</claimApplicationNumberText>
      <applicationNumberText>14095073</applicationNumberText>
      <filingDate>2012-04-27</filingDate>
      <patentNumberText>8615454</patentNumberText>
      <applicationStatus>150</applicationStatus>
      <applicationStatusDescription>This application is a Continuation of</applicationStatusDescription>
    </continuity>
  </parentContinuity>
  <childContinuity/>
  <foreignPriority/>
  <ptaPteTranHistory>
    <entry><number>2.0</number><ptaOrPteDate>2015-09-29</ptaOrPteDate><contentsDescription>Patent Issue Date Used in PTA Calculation</contentsDescription><ptoDays>0</ptoDays><applDays>0</applDays><start>0</start></entry>
    <entry><number>1.0</number><ptaOrPteDate>2013-11-20</ptaOrPteDate><contentsDescription>Filing date</contentsDescription><ptoDays>0</ptoDays><applDays>0</applDays><start>0</start></entry>
  </ptaPteTranHistory>
  <attrnyAddr>
    <attorney><registrationNo>52345</registrationNo><fullName>SMITH, ALEX</fullName><phoneNum>713-758-2222</phoneNum><regStatus>ACTIVE</regStatus></attorney>
  </attrnyAddr>
</PatentData>`

// simpleDoc returns a minimal search document for applID.
func simpleDoc(applID, title string) string {
	return fmt.Sprintf(`{"applId":%q,"appFilingDate":"2010-01-05T05:00:00Z","patentTitle":%q}`, applID, title)
}

// simpleXML returns a minimal record element for applID.
func simpleXML(applID, title string) string {
	return fmt.Sprintf(`<PatentData><applId>%s</applId><appFilingDate>2010-01-05</appFilingDate><patentTitle>%s</patentTitle></PatentData>`, applID, title)
}

func searchBody(numFound int, queryID string, docs ...string) string {
	return fmt.Sprintf(`{"queryId":%q,"queryResults":{"searchResponse":{"response":{"numFound":%d,"docs":[%s]}}}}`,
		queryID, numFound, strings.Join(docs, ","))
}

func bulkXML(records ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><PatentBulkData>` + strings.Join(records, "") + `</PatentBulkData>`
}

// zipOf builds an archive with one member per name/content pair.
func zipOf(t *testing.T, members ...string) []byte {
	t.Helper()
	require.Zero(t, len(members)%2)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i < len(members); i += 2 {
		w, err := zw.Create(members[i])
		require.NoError(t, err)
		_, err = w.Write([]byte(members[i+1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func testHTTPConfig() config.HTTPConfig {
	return config.HTTPConfig{
		Timeout:        5 * time.Second,
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		UserAgent:      "keyip-test",
	}
}

func testUSPTOConfig(baseURL string) config.USPTOConfig {
	return config.USPTOConfig{
		BaseURL:             baseURL,
		JSONResultLimit:     20,
		ChunkSize:           25,
		PackagePollInterval: 5 * time.Millisecond,
		PackageTimeout:      2 * time.Second,
	}
}

//Personal.AI order the ending
