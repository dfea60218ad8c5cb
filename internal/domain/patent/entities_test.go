package patent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtaPteSummary_FromFixture(t *testing.T) {
	app, err := NewApplication(fixture14095073(FormatJSON))
	assert.NoError(t, err)

	assert.Equal(t, map[string]any{
		"type":            "PTA",
		"a_delay":         169,
		"b_delay":         0,
		"c_delay":         0,
		"overlap_delay":   0,
		"pto_delay":       169,
		"applicant_delay": 10,
		"pto_adjustments": 0,
		"total_days":      159,
	}, app.PtaPteSummary().AsDict())
}

func TestPtaPteSummary_Invariant(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		want   int
	}{
		{"office delay exceeds applicant", map[string]string{"pto_delay": "752", "appl_delay": "0"}, 752},
		{"applicant delay exceeds office", map[string]string{"pto_delay": "10", "appl_delay": "40"}, 0},
		{"adjustments applied after floor", map[string]string{"pto_delay": "10", "appl_delay": "40", "pto_adjustments": "5"}, 5},
		{"negative adjustments floored", map[string]string{"pto_delay": "10", "appl_delay": "0", "pto_adjustments": "-30"}, 0},
		{"pto delay derived from components", map[string]string{"a_delay": "100", "b_delay": "50", "c_delay": "0", "overlap_delay": "20", "appl_delay": "30"}, 100},
		{"total only", map[string]string{"total_pto_days": "42"}, 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newPtaPteSummary(tc.fields)
			assert.Equal(t, tc.want, s.TotalDays)
			assert.GreaterOrEqual(t, s.TotalDays, 0)
			if _, ok := tc.fields["total_pto_days"]; !ok && s.PtoAdjustments == 0 && s.PtoDelay >= s.ApplicantDelay {
				assert.Equal(t, s.PtoDelay-s.ApplicantDelay, s.TotalDays)
			}
		})
	}
}

func TestPtaPteSummary_ReportedTotalIsKept(t *testing.T) {
	s := newPtaPteSummary(map[string]string{"pto_delay": "100", "appl_delay": "10", "total_pto_days": "120"})
	assert.Equal(t, 90, s.TotalDays)
	reported, ok := s.ReportedTotal()
	assert.True(t, ok)
	assert.Equal(t, 120, reported)

	_, ok = newPtaPteSummary(map[string]string{"pto_delay": "100"}).ReportedTotal()
	assert.False(t, ok)
}

func TestPtaPteSummary_Absent(t *testing.T) {
	s := newPtaPteSummary(map[string]string{"appl_id": "14865625"})
	assert.Equal(t, PtaPteSummary{}, s)
	assert.Nil(t, s.AsDict()["type"])
}

func TestTermAdjustmentDays(t *testing.T) {
	assert.Equal(t, 159, TermAdjustmentDays(169, 10, 0))
	assert.Equal(t, 0, TermAdjustmentDays(0, 10, 0))
	assert.Equal(t, 7, TermAdjustmentDays(0, 10, 7))
}

func TestRelationship_ParentWithoutPatent(t *testing.T) {
	r, ok := newRelationship(map[string]string{
		"claim_application_number_text":  "61706484",
		"filing_date":                    "2012-09-27",
		"application_status_description": "Claims Priority from Provisional Application",
	}, "14018930")
	assert.True(t, ok)
	assert.Equal(t, map[string]any{
		"appl_id":            "61706484",
		"filing_date":        NewDate(2012, 9, 27),
		"patent_number":      nil,
		"status":             nil,
		"relationship":       "Claims Priority from Provisional Application",
		"related_to_appl_id": "14018930",
	}, r.AsDict())
}

func TestCorrespondent_OmitsEmptyLines(t *testing.T) {
	c := newCorrespondent(map[string]string{"corr_addr_cust_no": "70155"})
	assert.Equal(t, map[string]any{"cust_no": "70155"}, c.AsDict())
}

//Personal.AI order the ending
