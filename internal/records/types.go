// Package records mines gazette PDF text for administrative-act records:
// retirement grants, pension grants, and tax-exemption denials.
package records

// ActType classifies one administrative act.
type ActType string

const (
	// ActRetirement marks a retirement grant ("conceder aposentadoria").
	ActRetirement ActType = "APOSENTADORIA"
	// ActPension marks a pension grant ("conceder pensão").
	ActPension ActType = "PENSAO"
	// ActTaxExemptionDenied marks a denied income-tax exemption.
	ActTaxExemptionDenied ActType = "ISENCAO_INDEFERIDA"
)

// Record is one administrative act extracted from a gazette PDF. Records are
// value objects: written once to the output sink, never mutated. ActType is
// always set; a block that matches no act type produces no Record at all.
type Record struct {
	ActType        ActType
	Name           string // empty when no extraction strategy matched
	RegistrationID string // "matrícula", empty when unlabeled
	CaseNumber     string // "processo", empty when unlabeled
	Page           int    // 1-based page number within the PDF
	Excerpt        string // bounded-length source-block snippet for audit
}
