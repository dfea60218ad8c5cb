package patent

import "sort"

// FieldKind determines how a field value is normalized, compared and exposed.
type FieldKind int

const (
	KindText FieldKind = iota
	KindDate
	KindNumber
)

func (k FieldKind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindNumber:
		return "number"
	default:
		return "text"
	}
}

// IdentifierClass names a field that identifies an application.  Each class
// present in a query is resolved with its own backend call.
type IdentifierClass string

const (
	ClassApplication IdentifierClass = "appl_id"
	ClassPatent      IdentifierClass = "patent_number"
	ClassPublication IdentifierClass = "app_early_pub_number"
)

// IdentifierClasses lists the classes in resolution order.
var IdentifierClasses = []IdentifierClass{ClassApplication, ClassPatent, ClassPublication}

// FieldDescriptor describes one attribute of an application record.
type FieldDescriptor struct {
	Name       string
	Kind       FieldKind
	Filterable bool
	Identifier IdentifierClass
}

// IsIdentifier reports whether the field is one of the identifier classes.
func (d FieldDescriptor) IsIdentifier() bool { return d.Identifier != "" }

func text(name string) FieldDescriptor     { return FieldDescriptor{Name: name, Kind: KindText, Filterable: true} }
func date(name string) FieldDescriptor     { return FieldDescriptor{Name: name, Kind: KindDate, Filterable: true} }
func ident(c IdentifierClass) FieldDescriptor {
	return FieldDescriptor{Name: string(c), Kind: KindText, Filterable: true, Identifier: c}
}
func internalNumber(name string) FieldDescriptor { return FieldDescriptor{Name: name, Kind: KindNumber} }
func internalText(name string) FieldDescriptor   { return FieldDescriptor{Name: name, Kind: KindText} }

// ApplicationFields is the field vocabulary of an application record.
// Filterable fields form the allowed filter set; every field can be projected
// and ordered on.
var ApplicationFields = []FieldDescriptor{
	ident(ClassApplication),
	ident(ClassPatent),
	ident(ClassPublication),
	date("app_filing_date"),
	date("app_early_pub_date"),
	date("patent_issue_date"),
	date("app_status_date"),
	date("wipo_early_pub_date"),
	text("patent_title"),
	text("app_exam_name"),
	text("app_exam_prefrd_name"),
	text("app_location"),
	text("app_grp_art_number"),
	text("app_status"),
	text("app_type"),
	text("app_cust_number"),
	text("app_cls_sub_cls"),
	text("app_entity_status"),
	text("app_confr_number"),
	text("app_attr_dock_number"),
	text("app_pct_number"),
	text("app_intl_pub_number"),
	text("wipo_early_pub_number"),
	text("pct_app_type"),
	text("first_inventor_file"),
	text("first_named_applicant"),
	text("primary_inventor"),
	text("corr_addr_cust_no"),

	internalText("pta_pte_ind"),
	internalNumber("total_pto_days"),
	internalNumber("a_delay"),
	internalNumber("b_delay"),
	internalNumber("c_delay"),
	internalNumber("overlap_delay"),
	internalNumber("pto_delay"),
	internalNumber("appl_delay"),
	internalNumber("pto_adjustments"),

	internalText("corr_addr_name_line_one"),
	internalText("corr_addr_name_line_two"),
	internalText("corr_addr_street_line_one"),
	internalText("corr_addr_street_line_two"),
	internalText("corr_addr_street_line_three"),
	internalText("corr_addr_city"),
	internalText("corr_addr_geo_region_code"),
	internalText("corr_addr_postal_code"),
}

// RelationFields describes the item fields of each sub-collection.
var RelationFields = map[Relation][]FieldDescriptor{
	RelationTransactions: {
		internalText("code"), FieldDescriptor{Name: "record_date", Kind: KindDate}, internalText("description"),
	},
	RelationParents:  continuityFields,
	RelationChildren: continuityFields,
	RelationForeignPriority: {
		internalText("country_name"), internalText("application_number_text"), FieldDescriptor{Name: "filing_date", Kind: KindDate},
	},
	RelationPtaPteHistory: {
		internalNumber("number"),
		FieldDescriptor{Name: "pta_or_pte_date", Kind: KindDate},
		internalText("contents_description"),
		internalNumber("pto_days"),
		internalNumber("appl_days"),
		internalNumber("start"),
	},
	RelationAttorneys: {
		internalText("registration_no"), internalText("full_name"), internalText("phone_num"), internalText("reg_status"),
	},
}

var continuityFields = []FieldDescriptor{
	internalText("claim_application_number_text"),
	internalText("application_number_text"),
	FieldDescriptor{Name: "filing_date", Kind: KindDate},
	internalText("patent_number_text"),
	internalText("application_status"),
	internalText("application_status_description"),
}

var fieldIndex = func() map[string]FieldDescriptor {
	m := make(map[string]FieldDescriptor, len(ApplicationFields))
	for _, d := range ApplicationFields {
		m[d.Name] = d
	}
	return m
}()

// LookupField returns the descriptor of an application field.
func LookupField(name string) (FieldDescriptor, bool) {
	d, ok := fieldIndex[name]
	return d, ok
}

// FilterableFields returns the allowed filter names, sorted.
func FilterableFields() []string {
	out := make([]string, 0, len(ApplicationFields))
	for _, d := range ApplicationFields {
		if d.Filterable {
			out = append(out, d.Name)
		}
	}
	sort.Strings(out)
	return out
}

// IsFilterable reports whether name may be used as a filter criterion.
func IsFilterable(name string) bool {
	d, ok := fieldIndex[name]
	return ok && d.Filterable
}

//Personal.AI order the ending
