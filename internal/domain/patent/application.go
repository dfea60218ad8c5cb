package patent

import (
	"sort"
	"strconv"

	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// Application is the typed projection of one prosecution record.  It is built
// once by NewApplication and is safe for concurrent reads.
type Application struct {
	ApplID              string
	AppFilingDate       Date
	AppEarlyPubNumber   string
	AppEarlyPubDate     Date
	PatentNumber        string
	PatentIssueDate     Date
	PatentTitle         string
	AppExamName         string
	AppGrpArtNumber     string
	AppStatus           string
	AppStatusDate       Date
	AppType             string
	AppEntityStatus     string
	AppConfrNumber      string
	AppCustNumber       string
	AppAttrDockNumber   string
	AppLocation         string
	FirstInventorFile   string
	FirstNamedApplicant string
	InventorName        string
	AppClsSubCls        string
	WipoEarlyPubNumber  string
	WipoEarlyPubDate    Date

	format          SourceFormat
	fields          map[string]string
	parents         []Relationship
	children        []Relationship
	transactions    []Transaction
	foreignPriority []ForeignPriority
	ptaPteHistory   []PtaPteHistoryEntry
	ptaPteSummary   PtaPteSummary
	correspondent   Correspondent
	attorneys       []Attorney
}

// NewApplication maps a normalized record onto an Application.  A record
// without appl_id, or with a continuity item lacking the claimed application
// number, is rejected as unparseable.
func NewApplication(rec RawRecord) (*Application, error) {
	id := rec.Field("appl_id")
	if id == "" {
		return nil, errors.New(errors.ErrCodeSourceParseError, "record has no application number")
	}

	fields := make(map[string]string, len(rec.Fields))
	for k, v := range rec.Fields {
		fields[k] = v
	}

	app := &Application{
		ApplID:              id,
		AppFilingDate:       mustDate(fields["app_filing_date"]),
		AppEarlyPubNumber:   fields["app_early_pub_number"],
		AppEarlyPubDate:     mustDate(fields["app_early_pub_date"]),
		PatentNumber:        fields["patent_number"],
		PatentIssueDate:     mustDate(fields["patent_issue_date"]),
		PatentTitle:         fields["patent_title"],
		AppExamName:         fields["app_exam_name"],
		AppGrpArtNumber:     fields["app_grp_art_number"],
		AppStatus:           fields["app_status"],
		AppStatusDate:       mustDate(fields["app_status_date"]),
		AppType:             fields["app_type"],
		AppEntityStatus:     fields["app_entity_status"],
		AppConfrNumber:      fields["app_confr_number"],
		AppCustNumber:       fields["app_cust_number"],
		AppAttrDockNumber:   fields["app_attr_dock_number"],
		AppLocation:         fields["app_location"],
		FirstInventorFile:   fields["first_inventor_file"],
		FirstNamedApplicant: fields["first_named_applicant"],
		InventorName:        fields["primary_inventor"],
		AppClsSubCls:        fields["app_cls_sub_cls"],
		WipoEarlyPubNumber:  fields["wipo_early_pub_number"],
		WipoEarlyPubDate:    mustDate(fields["wipo_early_pub_date"]),

		format:        rec.Format,
		fields:        fields,
		ptaPteSummary: newPtaPteSummary(fields),
		correspondent: newCorrespondent(fields),
	}

	var err error
	if app.parents, err = relationships(rec.Collection(RelationParents), id); err != nil {
		return nil, err
	}
	if app.children, err = relationships(rec.Collection(RelationChildren), id); err != nil {
		return nil, err
	}

	for _, item := range rec.Collection(RelationTransactions) {
		app.transactions = append(app.transactions, Transaction{
			Date:        mustDate(item["record_date"]),
			Code:        item["code"],
			Description: item["description"],
		})
	}
	sort.SliceStable(app.transactions, func(i, j int) bool {
		return app.transactions[i].Date.Before(app.transactions[j].Date)
	})

	for _, item := range rec.Collection(RelationForeignPriority) {
		app.foreignPriority = append(app.foreignPriority, ForeignPriority{
			CountryName:           item["country_name"],
			ApplicationNumberText: item["application_number_text"],
			FilingDate:            mustDate(item["filing_date"]),
		})
	}

	for _, item := range rec.Collection(RelationPtaPteHistory) {
		app.ptaPteHistory = append(app.ptaPteHistory, PtaPteHistoryEntry{
			Number:        floatField(item, "number"),
			Date:          mustDate(item["pta_or_pte_date"]),
			Description:   item["contents_description"],
			PtoDays:       floatField(item, "pto_days"),
			ApplicantDays: floatField(item, "appl_days"),
			Start:         floatField(item, "start"),
		})
	}
	sort.SliceStable(app.ptaPteHistory, func(i, j int) bool {
		return app.ptaPteHistory[i].Number < app.ptaPteHistory[j].Number
	})

	for _, item := range rec.Collection(RelationAttorneys) {
		app.attorneys = append(app.attorneys, Attorney{
			RegistrationNo: item["registration_no"],
			FullName:       item["full_name"],
			PhoneNum:       item["phone_num"],
			RegStatus:      item["reg_status"],
		})
	}
	return app, nil
}

func relationships(items []map[string]string, base string) ([]Relationship, error) {
	out := make([]Relationship, 0, len(items))
	for i, item := range items {
		r, ok := newRelationship(item, base)
		if !ok {
			return nil, errors.New(errors.ErrCodeSourceParseError, "continuity item has no claimed application number").
				WithDetail("appl_id=" + base + " index=" + strconv.Itoa(i))
		}
		out = append(out, r)
	}
	return out, nil
}

// Format reports the representation the record was decoded from.
func (a *Application) Format() SourceFormat { return a.format }

// Parents returns the continuity links toward earlier filings.
func (a *Application) Parents() []Relationship { return append([]Relationship(nil), a.parents...) }

// Children returns the continuity links toward later filings.
func (a *Application) Children() []Relationship { return append([]Relationship(nil), a.children...) }

// TransactionHistory returns the prosecution events sorted by date.
func (a *Application) TransactionHistory() []Transaction {
	return append([]Transaction(nil), a.transactions...)
}

// ForeignPriorityApplications returns the foreign priority claims.
func (a *Application) ForeignPriorityApplications() []ForeignPriority {
	return append([]ForeignPriority(nil), a.foreignPriority...)
}

// PtaPteHistory returns the adjustment timeline ordered by entry number.
func (a *Application) PtaPteHistory() []PtaPteHistoryEntry {
	return append([]PtaPteHistoryEntry(nil), a.ptaPteHistory...)
}

func (a *Application) PtaPteSummary() PtaPteSummary { return a.ptaPteSummary }

func (a *Application) Correspondent() Correspondent { return a.correspondent }

func (a *Application) Attorneys() []Attorney { return append([]Attorney(nil), a.attorneys...) }

// HasTransaction reports whether any prosecution event carries code.
func (a *Application) HasTransaction(code string) bool {
	for _, t := range a.transactions {
		if t.Code == code {
			return true
		}
	}
	return false
}

// Publication is the most authoritative publication of the application: the
// granted patent if any, otherwise the pre-grant publication.
func (a *Application) Publication() string {
	if a.PatentNumber != "" {
		return "US" + a.PatentNumber
	}
	return a.AppEarlyPubNumber
}

// SelfLink returns the link of the application to its own filing.
func (a *Application) SelfLink() Relationship {
	return Relationship{
		ApplID:          a.ApplID,
		FilingDate:      a.AppFilingDate,
		PatentNumber:    a.PatentNumber,
		Status:          a.AppStatus,
		Relationship:    SelfRelationship,
		RelatedToApplID: a.ApplID,
	}
}

// Value returns the typed value of an application field for projection and
// ordering: Date for date fields, float64 for numbers, string otherwise.  The
// second result is false for unknown names; an unset field yields (nil, true).
func (a *Application) Value(name string) (any, bool) {
	d, ok := LookupField(name)
	if !ok {
		return nil, false
	}
	raw, set := a.fields[name]
	if !set {
		return nil, true
	}
	switch d.Kind {
	case KindDate:
		return mustDate(raw), true
	case KindNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, true
		}
		return f, true
	default:
		return raw, true
	}
}

// AsDict renders every populated filterable field plus the derived entities.
// The result does not depend on Format.
func (a *Application) AsDict() map[string]any {
	out := make(map[string]any, len(ApplicationFields)+8)
	for _, d := range ApplicationFields {
		if !d.Filterable {
			continue
		}
		v, _ := a.Value(d.Name)
		out[d.Name] = v
	}

	out["transaction_history"] = dicts(a.transactions)
	out["children"] = dicts(a.children)
	out["parents"] = dicts(a.parents)
	out["foreign_priority_applications"] = dicts(a.foreignPriority)
	out["pta_pte_history"] = dicts(a.ptaPteHistory)
	out["pta_pte_summary"] = a.ptaPteSummary.AsDict()
	out["correspondent"] = a.correspondent.AsDict()
	out["attorneys"] = dicts(a.attorneys)
	return out
}

type dicter interface{ AsDict() map[string]any }

func dicts[T dicter](items []T) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, it := range items {
		out[i] = it.AsDict()
	}
	return out
}

//Personal.AI order the ending
