package dataset

import (
	"strings"
)

// Reserved selector placeholders. A selector is either one of these
// or a literal column name.
const (
	// SelIndex aligns rows positionally with the primary records.
	SelIndex = "{{index}}"
	// SelName matches against the primary records' declared names.
	SelName = "{{name}}"
	// SelTaxonID takes the value as a taxon ID directly.
	SelTaxonID = "{{taxon_id}}"
)

// Rule locates a dataset's rows against the primary records.
// Source selects a value in the dataset row; Destination says what
// that value is matched against on the primary side:
//
//   - Destination {{index}}: positional alignment, the row at offset
//     i binds to the leaf taxon of record i (Source is ignored).
//   - Destination {{name}}: the Source column's value is matched
//     against the records' name attribute.
//   - Destination {{taxon_id}}: the Source column already holds
//     taxon IDs.
//   - Destination literal column: equality join against that column
//     of the primary records' source rows.
type Rule struct {
	Source      string `yaml:"source"      json:"source"`
	Destination string `yaml:"destination" json:"destination"`
}

// Policy decides the tie-break when a row matches several primary
// records under column-equality mapping.
type Policy int

const (
	// FirstMatch takes the earliest matching record in input order.
	FirstMatch Policy = iota
	// ErrorOnAmbiguous fails the attachment on multiple matches.
	ErrorOnAmbiguous
)

// ParsePolicy converts a config string into a Policy. Unknown values
// fall back to FirstMatch.
func ParsePolicy(s string) Policy {
	if strings.ToLower(strings.TrimSpace(s)) == "strict" {
		return ErrorOnAmbiguous
	}
	return FirstMatch
}

func (p Policy) String() string {
	if p == ErrorOnAmbiguous {
		return "strict"
	}
	return "first"
}

// isPlaceholder reports whether a selector is one of the reserved
// placeholders.
func isPlaceholder(sel string) bool {
	return sel == SelIndex || sel == SelName || sel == SelTaxonID
}

// validateRules checks every rule against the dataset before any row
// is resolved. Rule problems are configuration errors and fatal.
func validateRules(ds *Dataset, rules []Rule) error {
	if len(rules) == 0 {
		return NoRulesError(ds.Name)
	}
	for _, rule := range rules {
		if rule.Destination == "" {
			return BadSelectorError(ds.Name, rule, "empty destination")
		}
		if rule.Destination == SelIndex {
			continue
		}
		if rule.Source == "" {
			return BadSelectorError(ds.Name, rule, "empty source")
		}
		if isPlaceholder(rule.Source) {
			return BadSelectorError(
				ds.Name, rule,
				"source must be a column of the dataset",
			)
		}
		if ds.ColumnIndex(rule.Source) < 0 {
			return MissingColumnError(ds.Name, rule.Source)
		}
	}
	return nil
}
