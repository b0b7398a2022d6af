// Package prescription resolves whether a medicine requires a prescription.
package prescription

import "strings"

// Classifier is the injected capability consulted at aggregation time (for
// display) and at order-finalization time (for the checkout gate).
type Classifier interface {
	RequiresPrescription(name string) bool
}

// defaultRegulated lists medicine names that require a prescription. Lookups
// are case-insensitive and match branded names containing the molecule.
var defaultRegulated = []string{
	"azithromycin",
	"amoxicillin",
	"ciprofloxacin",
	"doxycycline",
	"metformin",
	"atorvastatin",
	"amlodipine",
	"losartan",
	"alprazolam",
	"tramadol",
	"codeine",
	"insulin",
	"prednisolone",
	"warfarin",
	"clopidogrel",
	"sertraline",
	"fluoxetine",
	"montelukast",
	"levothyroxine",
	"pantoprazole",
}

// TableClassifier is a Classifier backed by a name lookup table.
type TableClassifier struct {
	exact map[string]struct{}
	names []string
}

// NewTableClassifier builds a classifier over the built-in regulated list
// plus any extra names from configuration.
func NewTableClassifier(extra ...string) *TableClassifier {
	c := &TableClassifier{exact: make(map[string]struct{})}
	for _, n := range defaultRegulated {
		c.add(n)
	}
	for _, n := range extra {
		c.add(n)
	}
	return c
}

func (c *TableClassifier) add(name string) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return
	}
	if _, ok := c.exact[n]; ok {
		return
	}
	c.exact[n] = struct{}{}
	c.names = append(c.names, n)
}

// RequiresPrescription reports whether the given medicine name is regulated.
// An exact (normalized) hit wins; otherwise any regulated name contained in
// the listing name trips it, so "Azithromycin 500 Tablet" is caught.
func (c *TableClassifier) RequiresPrescription(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	if _, ok := c.exact[n]; ok {
		return true
	}
	for _, r := range c.names {
		if strings.Contains(n, r) {
			return true
		}
	}
	return false
}
