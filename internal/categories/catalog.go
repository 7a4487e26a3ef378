// Package categories defines the fixed set of project categories that notes
// are classified under. The catalog is an explicit value passed to the
// components that need it rather than ambient package state, so validation
// is testable without process-wide setup.
package categories

import "slices"

// Default is the category a note falls back to when the classifier returns
// a label outside the catalog.
const Default = "General"

// ActionItems is the category reserved for discrete, assignable tasks.
// Notes in this category feed the action-item grouping projection.
const ActionItems = "Action Items"

// Catalog is an immutable enumerated set of valid classification labels.
type Catalog struct {
	labels []string
}

// Project status log categories, in display order.
var defaultLabels = []string{
	"General",
	"Development/Reliance Material",
	"GIS updates",
	"Interconnection",
	"Land",
	"Facility location",
	"Environmental/Biological Cultural",
	"Schedule",
	"Breakers",
	"MPT",
	"Modules",
	"Owner's Engineer",
	"30% Package",
	"60% Package",
	"Geotech investigation",
	"Structural",
	"Civil",
	"Electrical",
	"Substation",
	"Construction Milestones",
	"Pricing",
	"Risk Register",
	"Permanent Utilities",
	"Contracting",
	"LNTP",
	"BOP-EPC",
	"PWC",
	"Action Items",
}

// DefaultCatalog returns the built-in project category catalog.
func DefaultCatalog() Catalog {
	return NewCatalog(defaultLabels)
}

// NewCatalog creates a Catalog from the given labels. The slice is copied;
// later mutation of the argument does not affect the catalog.
func NewCatalog(labels []string) Catalog {
	return Catalog{labels: slices.Clone(labels)}
}

// Labels returns a copy of the catalog's labels in order.
func (c Catalog) Labels() []string {
	return slices.Clone(c.labels)
}

// Contains reports whether label is a member of the catalog.
func (c Catalog) Contains(label string) bool {
	return slices.Contains(c.labels, label)
}

// Len returns the number of labels in the catalog.
func (c Catalog) Len() int {
	return len(c.labels)
}
