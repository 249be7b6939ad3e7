package validator

import (
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
)

// namedType looks up name in s, treating a type gated behind a feature
// absent from features as if it didn't exist.
func namedType(s *schema.Schema, features schema.FeatureSet, name string) schema.NamedType {
	t := s.NamedType(name)
	if t == nil {
		return nil
	}
	if gated, ok := t.(interface{ TypeRequiredFeatures() schema.FeatureSet }); ok {
		if !gated.TypeRequiredFeatures().IsSubsetOf(features) {
			return nil
		}
	}
	return t
}

// validateFragmentDeclarations checks every fragment definition's type
// condition and flags fragments that are never spread anywhere in the
// document. It needs the whole document up front (to know every spread
// before judging any definition unused), so it runs as its own pass.
func validateFragmentDeclarations(c *Context) {
	validateTypeCondition := func(tc *ast.NamedType) {
		switch namedType(c.Schema, c.Features, tc.Name.Name).(type) {
		case *schema.ObjectType, *schema.InterfaceType, *schema.UnionType:
		case nil:
			c.ReportError(newError(tc.Name, "undefined type: %v%v", tc.Name.Name, didYouMean(suggestionList(tc.Name.Name, namedTypeNames(c.Schema)))))
		default:
			c.ReportError(newError(tc.Name, "fragments may only be defined on objects, interfaces, and unions"))
		}
	}

	fragmentsByName := map[string]*ast.FragmentDefinition{}
	for _, def := range c.Document.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			if _, ok := fragmentsByName[def.Name.Name]; ok {
				c.ReportError(newError(def.Name, "a fragment named %v already exists", def.Name.Name))
			} else {
				fragmentsByName[def.Name.Name] = def
			}
			validateTypeCondition(def.TypeCondition)
		}
	}

	usedFragments := map[string]struct{}{}
	ast.Inspect(c.Document, func(node ast.Node) bool {
		switch node := node.(type) {
		case *ast.FragmentSpread:
			usedFragments[node.FragmentName.Name] = struct{}{}
		case *ast.InlineFragment:
			if node.TypeCondition != nil {
				validateTypeCondition(node.TypeCondition)
			}
		}
		return true
	})

	for name, def := range fragmentsByName {
		if _, ok := usedFragments[name]; !ok {
			c.ReportError(newError(def, "fragment %v is never used", name))
		}
	}
}

// validateFragmentSpreads checks that every fragment spread names a defined
// fragment, contains no fragment cycle, and spreads only where its type
// condition can possibly apply. Cycle detection needs each fragment's full
// dependency graph before any spread can be judged, so this also runs as
// its own pass.
func validateFragmentSpreads(c *Context) {
	fragmentsByName := map[string]*ast.FragmentDefinition{}
	directFragmentDependencies := map[string]map[string]struct{}{}
	for _, def := range c.Document.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			fragmentsByName[def.Name.Name] = def

			deps := map[string]struct{}{}
			ast.Inspect(def, func(node ast.Node) bool {
				if node, ok := node.(*ast.FragmentSpread); ok {
					deps[node.FragmentName.Name] = struct{}{}
				}
				return true
			})
			directFragmentDependencies[def.Name.Name] = deps
		}
	}

	for name := range fragmentsByName {
		toVisit := []string{name}
		encountered := map[string]struct{}{}
		cycleFound := false
		for i := 0; i < len(toVisit) && !cycleFound; i++ {
			for dep := range directFragmentDependencies[toVisit[i]] {
				if _, ok := encountered[dep]; !ok {
					if dep == name {
						cycleFound = true
						break
					}
					toVisit = append(toVisit, dep)
					encountered[dep] = struct{}{}
				}
			}
		}
		if cycleFound {
			c.ReportError(newError(fragmentsByName[name], "fragment %v forms a cycle", name))
		}
	}

	validateSpread := func(tc *ast.NamedType, parentType schema.NamedType) {
		if parentType == nil {
			c.ReportError(newSecondaryError(tc, "no type info for fragment spread parent"))
			return
		}
		switch fragmentType := namedType(c.Schema, c.Features, tc.Name.Name).(type) {
		case *schema.ObjectType, *schema.InterfaceType, *schema.UnionType:
			a := getPossibleTypes(c.Schema, fragmentType)
			b := getPossibleTypes(c.Schema, parentType)
			hasIntersection := false
			for k := range a {
				if _, ok := b[k]; ok {
					hasIntersection = true
					break
				}
			}
			if !hasIntersection {
				c.ReportError(newError(tc, "fragment cannot be spread here, since %v can never be a %v", parentType.NamedType(), tc.Name.Name))
			}
		default:
		}
	}

	var selectionSetTypes []schema.NamedType
	ast.Inspect(c.Document, func(node ast.Node) bool {
		if node == nil {
			selectionSetTypes = selectionSetTypes[:len(selectionSetTypes)-1]
			return true
		}

		var selectionSetType schema.NamedType
		switch node := node.(type) {
		case *ast.SelectionSet:
			selectionSetType = c.TypeInfo.SelectionSetTypes[node]
		case *ast.FragmentSpread:
			name := node.FragmentName.Name
			if def, ok := fragmentsByName[name]; !ok {
				c.ReportError(newError(node.FragmentName, "undefined fragment: %v%v", name, didYouMean(suggestionList(name, fragmentNames(fragmentsByName)))))
			} else {
				validateSpread(def.TypeCondition, selectionSetTypes[len(selectionSetTypes)-1])
			}
		case *ast.InlineFragment:
			if node.TypeCondition != nil {
				validateSpread(node.TypeCondition, selectionSetTypes[len(selectionSetTypes)-1])
			}
		}
		selectionSetTypes = append(selectionSetTypes, selectionSetType)
		return true
	})
}

func namedTypeNames(s *schema.Schema) []string {
	types := s.NamedTypes()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	return names
}

func fragmentNames(fragmentsByName map[string]*ast.FragmentDefinition) []string {
	names := make([]string, 0, len(fragmentsByName))
	for name := range fragmentsByName {
		names = append(names, name)
	}
	return names
}

func getPossibleTypes(s *schema.Schema, t schema.NamedType) map[string]schema.NamedType {
	ret := map[string]schema.NamedType{}
	switch t := t.(type) {
	case *schema.ObjectType:
		ret[t.Name] = t
	case *schema.InterfaceType:
		for _, obj := range s.InterfaceImplementations(t.Name) {
			ret[obj.Name] = obj
		}
	case *schema.UnionType:
		for _, member := range t.MemberTypes {
			ret[member.NamedType()] = member
		}
	default:
		panic(fmt.Sprintf("unexpected type: %T", t))
	}
	return ret
}
