package patent

// fixture14095073 mirrors the examination record of application 14095073
// after normalization.
func fixture14095073(format SourceFormat) RawRecord {
	rec := NewRawRecord(format)
	for k, v := range map[string]string{
		"appl_id":                   "14095073",
		"app_filing_date":           "2013-12-03",
		"patent_number":             "9402813",
		"patent_issue_date":         "2016-08-02",
		"patent_title":              "SUCTION AND DISCHARGE LINES FOR A DUAL HYDRAULIC FRACTURING UNIT",
		"app_status":                "Patented Case",
		"app_type":                  "Utility",
		"app_cust_number":           "22892",
		"corr_addr_cust_no":         "22892",
		"pta_pte_ind":               "PTA",
		"total_pto_days":            "159",
		"a_delay":                   "169",
		"b_delay":                   "0",
		"c_delay":                   "0",
		"overlap_delay":             "0",
		"pto_delay":                 "169",
		"appl_delay":                "10",
		"pto_adjustments":           "0",
		"corr_addr_name_line_one":   "VINSON & ELKINS L.L.P.",
		"corr_addr_street_line_one": "First City Tower, 1001 Fannin Street",
		"corr_addr_street_line_two": "Suite 2500",
		"corr_addr_city":            "HOUSTON",
		"corr_addr_geo_region_code": "TX",
		"corr_addr_postal_code":     "77002-6760",
	} {
		rec.SetField(k, v)
	}
	rec = rec.WithRelation(RelationTransactions, []map[string]string{
		{"record_date": "2016-08-02", "code": "PTAC", "description": "Patent Issue Date Used in PTA Calculation"},
		{"record_date": "2013-12-03", "code": "C602", "description": "Oath or Declaration Filed (Including Supplemental)"},
		{"record_date": "2013-12-03", "code": "IEXX", "description": "Initial Exam Team nn"},
	})
	rec = rec.WithRelation(RelationPtaPteHistory, []map[string]string{
		{"number": "2", "pta_or_pte_date": "2016-08-02", "contents_description": "Issue Notification Mailed", "pto_days": "0", "appl_days": "0", "start": "1.5"},
		{"number": "0.5", "pta_or_pte_date": "2013-12-03", "contents_description": "Filing date", "pto_days": "0", "appl_days": "0", "start": "0"},
		{"number": "1.5", "pta_or_pte_date": "2015-05-20", "contents_description": "Mail Non-Final Rejection", "pto_days": "169", "appl_days": "0", "start": "0.5"},
	})
	rec = rec.WithRelation(RelationParents, nil)
	rec = rec.WithRelation(RelationChildren, []map[string]string{
		{
			"claim_application_number_text":  "15145443",
			"application_number_text":        "14095073",
			"filing_date":                    "2016-05-03",
			"patent_number_text":             "10221856",
			"application_status":             "Patented",
			"application_status_description": "This application claims the benefit of",
		},
	})
	rec = rec.WithRelation(RelationForeignPriority, nil)
	rec = rec.WithRelation(RelationAttorneys, []map[string]string{
		{"registration_no": "32429", "full_name": "Peter Mims", "phone_num": "713-758-2732", "reg_status": "ACTIVE"},
		{"registration_no": "45123", "full_name": "Jane Roe", "phone_num": "713-758-2000", "reg_status": "ACTIVE"},
	})
	for rel, items := range rec.Related {
		for i, item := range items {
			rec.Related[rel][i] = NormalizeItem(rel, item)
		}
	}
	return rec
}

//Personal.AI order the ending
