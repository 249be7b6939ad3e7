package validator

import (
	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
)

// Rule is a validation rule that can be supplied to ValidateDocument in
// addition to the standard rules, e.g. a query-cost limit or a host-specific
// restriction. It receives the same Context every standard rule does, and
// reports errors through c.ReportError.
type Rule func(c *Context)

// ValidateDocument runs every standard validation rule against doc (an
// executable document validated against s), plus any additionalRules, and
// returns the accumulated errors. If any rule reports a non-secondary
// error, only the non-secondary errors are returned: secondary errors exist
// to flag problems that are themselves just a symptom of a more fundamental
// one already reported (e.g. every rule that needs a fragment's type
// condition to exist stays quiet about it once NoUndefinedFragmentTypes
// already complained), and surfacing them alongside the causes they
// reported them because of is just noise.
func ValidateDocument(doc *ast.Document, s *schema.Schema, features schema.FeatureSet, additionalRules ...Rule) []*Error {
	c := &Context{
		Document: doc,
		Schema:   s,
		TypeInfo: NewTypeInfo(doc, s, features),
		Features: features,
	}

	Walk(c, []*Visitor{
		fieldsVisitor(),
		argumentsVisitor(),
		directivesVisitor(),
		valuesVisitor(),
	})

	validateExecutableDefinitions(c)
	validateFieldsCanMerge(c)
	validateOperations(c)
	validateFragmentDeclarations(c)
	validateFragmentSpreads(c)
	validateVariables(c)

	for _, rule := range additionalRules {
		rule(c)
	}

	var primary []*Error
	for _, err := range c.errors {
		if !err.isSecondary {
			primary = append(primary, err)
		}
	}
	if len(primary) > 0 {
		return primary
	}
	return c.errors
}
