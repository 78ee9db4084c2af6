package extraction

import (
	"github.com/jonathan/buyer-intel/internal/types"
)

// ProjectFields lists the candidate field names for each project attribute,
// in lookup order.
type ProjectFields struct {
	Name []string
	ID   []string
	Type []string
}

// Accessor abstracts one registry's record shape behind a small capability:
// which raw fields feed identity extraction, which field is the fallback
// name, and where volume, date and project data live. Selecting an Accessor
// is the only registry-specific branch in the pipeline; everything downstream
// is registry-agnostic.
type Accessor interface {
	Registry() types.Registry
	// Volume returns the raw quantity field value, unnormalized.
	Volume(r types.RawRecord) any
	// IdentitySourceText returns the free text searched for buyer phrases.
	IdentitySourceText(r types.RawRecord) string
	// FallbackName returns the raw field used when no phrase pattern matches.
	FallbackName(r types.RawRecord) string
	DateCandidates() []string
	ProjectFields() ProjectFields
}

// ForRegistry returns the accessor for a registry identifier. Unknown values
// fall back to the Verra shape so that a bad identifier degrades to empty
// extractions rather than a panic.
func ForRegistry(reg types.Registry) Accessor {
	if reg == types.RegistryCAR {
		return carAccessor{}
	}
	return verraAccessor{}
}

// Both registries' exports have shipped dates under every one of these names
// at some point, so the candidate list is shared and ordered by how current
// the export format is.
var dateCandidates = []string{
	"retirement_date",
	"Retirement/Cancellation Date",
	"status_effective",
	"Status Effective",
}

// Project fields likewise overlap across the two exports.
var projectFields = ProjectFields{
	Name: []string{"project_name", "Name", "Project Name"},
	ID:   []string{"project_id", "ID", "Project ID"},
	Type: []string{"project_type", "Project Type"},
}

type verraAccessor struct{}

func (verraAccessor) Registry() types.Registry { return types.RegistryVerra }

func (verraAccessor) Volume(r types.RawRecord) any {
	return r.First("quantity_issued", "Quantity Issued")
}

// IdentitySourceText combines the beneficiary and details fields; Verra
// records often name the buyer in one but not the other, and searching the
// concatenation raises the extraction hit rate.
func (verraAccessor) IdentitySourceText(r types.RawRecord) string {
	beneficiary := r.FirstString("retirement_beneficiary", "Retirement Beneficiary")
	details := r.FirstString("retirement_details", "Retirement Details")
	return beneficiary + " " + details
}

func (verraAccessor) FallbackName(r types.RawRecord) string {
	return r.FirstString("retirement_beneficiary", "Retirement Beneficiary")
}

func (verraAccessor) DateCandidates() []string     { return dateCandidates }
func (verraAccessor) ProjectFields() ProjectFields { return projectFields }

type carAccessor struct{}

func (carAccessor) Registry() types.Registry { return types.RegistryCAR }

func (carAccessor) Volume(r types.RawRecord) any {
	return r.First("quantity_tonnes", "Quantity of Offset Credits")
}

func (carAccessor) IdentitySourceText(r types.RawRecord) string {
	return r.FirstString("retirement_details", "Retirement Reason Details")
}

func (carAccessor) FallbackName(r types.RawRecord) string {
	return r.FirstString("account_holder", "Account Holder")
}

func (carAccessor) DateCandidates() []string     { return dateCandidates }
func (carAccessor) ProjectFields() ProjectFields { return projectFields }
