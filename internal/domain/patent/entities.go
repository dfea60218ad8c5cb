package patent

import (
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Derived entities
//
// Each value object is built once from a RawRecord sub-collection and never
// mutated.  All of them are comparable and expose AsDict with keys that do
// not depend on the upstream representation.
// ─────────────────────────────────────────────────────────────────────────────

// SelfRelationship labels the link of a record to its own filing.
const SelfRelationship = "self"

// Relationship is a continuity link between two applications.
type Relationship struct {
	ApplID          string
	FilingDate      Date
	PatentNumber    string
	Status          string
	Relationship    string
	RelatedToApplID string
}

// AsDict implements the uniform serialization contract.
func (r Relationship) AsDict() map[string]any {
	return map[string]any{
		"appl_id":            r.ApplID,
		"filing_date":        dateOrNil(r.FilingDate),
		"patent_number":      stringOrNil(r.PatentNumber),
		"status":             stringOrNil(r.Status),
		"relationship":       r.Relationship,
		"related_to_appl_id": stringOrNil(r.RelatedToApplID),
	}
}

// IsSelf reports whether r is the self link of its record.
func (r Relationship) IsSelf() bool { return r.Relationship == SelfRelationship }

func newRelationship(item map[string]string, base string) (Relationship, bool) {
	claim := item["claim_application_number_text"]
	if claim == "" {
		return Relationship{}, false
	}
	if c, err := CanonicalIdentifier(ClassApplication, claim); err == nil {
		claim = c
	}
	patentNumber := item["patent_number_text"]
	if patentNumber != "" {
		if c, err := CanonicalIdentifier(ClassPatent, patentNumber); err == nil {
			patentNumber = c
		}
	}
	return Relationship{
		ApplID:          claim,
		FilingDate:      mustDate(item["filing_date"]),
		PatentNumber:    patentNumber,
		Status:          item["application_status"],
		Relationship:    strings.TrimPrefix(item["application_status_description"], "This application "),
		RelatedToApplID: base,
	}, true
}

// ForeignPriority is a foreign application whose priority is claimed.
type ForeignPriority struct {
	CountryName           string
	ApplicationNumberText string
	FilingDate            Date
}

// AsDict implements the uniform serialization contract.
func (f ForeignPriority) AsDict() map[string]any {
	return map[string]any{
		"country_name":            f.CountryName,
		"application_number_text": f.ApplicationNumberText,
		"filing_date":             dateOrNil(f.FilingDate),
	}
}

// PtaPteHistoryEntry is one event of the term adjustment timeline.  Entries are
// ordered by Number, which is authoritative over Date.
type PtaPteHistoryEntry struct {
	Number        float64
	Date          Date
	Description   string
	PtoDays       float64
	ApplicantDays float64
	Start         float64
}

// AsDict implements the uniform serialization contract.
func (e PtaPteHistoryEntry) AsDict() map[string]any {
	return map[string]any{
		"number":         e.Number,
		"date":           dateOrNil(e.Date),
		"description":    e.Description,
		"pto_days":       e.PtoDays,
		"applicant_days": e.ApplicantDays,
		"start":          e.Start,
	}
}

// PtaPteSummary aggregates an application's term adjustment or extension.
//
// TotalDays = max(0, PtoDelay - ApplicantDelay) + PtoAdjustments, floored at 0.
type PtaPteSummary struct {
	Type           string
	ADelay         int
	BDelay         int
	CDelay         int
	OverlapDelay   int
	PtoDelay       int
	ApplicantDelay int
	PtoAdjustments int
	TotalDays      int

	reportedTotal int
	reported      bool
}

// ReportedTotal returns the upstream total_pto_days, if the record carried
// one.  It can differ from TotalDays when upstream applied adjustments the
// delay figures do not show.
func (s PtaPteSummary) ReportedTotal() (int, bool) { return s.reportedTotal, s.reported }

// AsDict implements the uniform serialization contract.
func (s PtaPteSummary) AsDict() map[string]any {
	return map[string]any{
		"type":            stringOrNil(s.Type),
		"a_delay":         s.ADelay,
		"b_delay":         s.BDelay,
		"c_delay":         s.CDelay,
		"overlap_delay":   s.OverlapDelay,
		"pto_delay":       s.PtoDelay,
		"applicant_delay": s.ApplicantDelay,
		"pto_adjustments": s.PtoAdjustments,
		"total_days":      s.TotalDays,
	}
}

// newPtaPteSummary builds the summary from record fields.  A record without
// term data yields the zero summary.  When pto_delay is absent it is derived
// as a + b + c - overlap; a record carrying only total_pto_days keeps that
// total as reported.
func newPtaPteSummary(fields map[string]string) PtaPteSummary {
	_, hasTotal := fields["total_pto_days"]
	_, hasDelay := fields["pto_delay"]
	_, hasA := fields["a_delay"]
	if !hasTotal && !hasDelay && !hasA {
		return PtaPteSummary{}
	}

	s := PtaPteSummary{
		Type:           fields["pta_pte_ind"],
		ADelay:         intField(fields, "a_delay"),
		BDelay:         intField(fields, "b_delay"),
		CDelay:         intField(fields, "c_delay"),
		OverlapDelay:   intField(fields, "overlap_delay"),
		ApplicantDelay: intField(fields, "appl_delay"),
		PtoAdjustments: intField(fields, "pto_adjustments"),
	}
	if hasTotal {
		s.reportedTotal, s.reported = intField(fields, "total_pto_days"), true
	}
	switch {
	case hasDelay:
		s.PtoDelay = intField(fields, "pto_delay")
	case hasA:
		s.PtoDelay = s.ADelay + s.BDelay + s.CDelay - s.OverlapDelay
	default:
		if s.reportedTotal > 0 {
			s.TotalDays = s.reportedTotal
		}
		return s
	}
	s.TotalDays = TermAdjustmentDays(s.PtoDelay, s.ApplicantDelay, s.PtoAdjustments)
	return s
}

// TermAdjustmentDays applies the summary arithmetic; no negative intermediate
// reaches the result.
func TermAdjustmentDays(ptoDelay, applicantDelay, adjustments int) int {
	net := ptoDelay - applicantDelay
	if net < 0 {
		net = 0
	}
	total := net + adjustments
	if total < 0 {
		return 0
	}
	return total
}

// Transaction is one dated prosecution event.
type Transaction struct {
	Date        Date
	Code        string
	Description string
}

// AsDict implements the uniform serialization contract.
func (t Transaction) AsDict() map[string]any {
	return map[string]any{
		"date":        dateOrNil(t.Date),
		"code":        t.Code,
		"description": t.Description,
	}
}

// Correspondent is the address of record for the application.
type Correspondent struct {
	NameLineOne     string
	NameLineTwo     string
	CustNo          string
	StreetLineOne   string
	StreetLineTwo   string
	StreetLineThree string
	City            string
	GeoRegionCode   string
	PostalCode      string
}

// AsDict implements the uniform serialization contract.  Empty lines are
// omitted.
func (c Correspondent) AsDict() map[string]any {
	out := make(map[string]any, 9)
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put("name_line_one", c.NameLineOne)
	put("name_line_two", c.NameLineTwo)
	put("cust_no", c.CustNo)
	put("street_line_one", c.StreetLineOne)
	put("street_line_two", c.StreetLineTwo)
	put("street_line_three", c.StreetLineThree)
	put("city", c.City)
	put("geo_region_code", c.GeoRegionCode)
	put("postal_code", c.PostalCode)
	return out
}

func newCorrespondent(fields map[string]string) Correspondent {
	return Correspondent{
		NameLineOne:     fields["corr_addr_name_line_one"],
		NameLineTwo:     fields["corr_addr_name_line_two"],
		CustNo:          fields["corr_addr_cust_no"],
		StreetLineOne:   fields["corr_addr_street_line_one"],
		StreetLineTwo:   fields["corr_addr_street_line_two"],
		StreetLineThree: fields["corr_addr_street_line_three"],
		City:            fields["corr_addr_city"],
		GeoRegionCode:   fields["corr_addr_geo_region_code"],
		PostalCode:      fields["corr_addr_postal_code"],
	}
}

// Attorney is a registered practitioner of record.
type Attorney struct {
	RegistrationNo string
	FullName       string
	PhoneNum       string
	RegStatus      string
}

// AsDict implements the uniform serialization contract.
func (a Attorney) AsDict() map[string]any {
	return map[string]any{
		"registration_no": a.RegistrationNo,
		"full_name":       a.FullName,
		"phone_num":       a.PhoneNum,
		"reg_status":      a.RegStatus,
	}
}

func intField(fields map[string]string, name string) int {
	f, err := strconv.ParseFloat(fields[name], 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func floatField(fields map[string]string, name string) float64 {
	f, err := strconv.ParseFloat(fields[name], 64)
	if err != nil {
		return 0
	}
	return f
}

//Personal.AI order the ending
