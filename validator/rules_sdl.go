package validator

import (
	"github.com/nilsbr/gqlcore/ast"
)

// ValidateSDLDocument runs the SDL-only structural rules: the ones that
// apply to a type-system document before (or instead of) building a Schema
// from it. schema.New already rejects duplicate or illegal named types when
// a schema is actually built, so these rules exist for documents that are
// being linted on their own, or whose errors should be reported together
// rather than stopping at the first schema.New failure.
func ValidateSDLDocument(doc *ast.Document) []*Error {
	var errs []*Error
	errs = append(errs, validateLoneSchemaDefinition(doc)...)
	errs = append(errs, validateUniqueOperationTypes(doc)...)
	errs = append(errs, validateUniqueTypeNames(doc)...)
	errs = append(errs, validateUniqueDirectiveNames(doc)...)
	errs = append(errs, validatePossibleTypeExtensions(doc)...)
	errs = append(errs, validateUniqueEnumValueNames(doc)...)
	errs = append(errs, validateUniqueFieldDefinitionNames(doc)...)
	errs = append(errs, validateUniqueArgumentDefinitionNames(doc)...)
	errs = append(errs, validateDirectiveApplications(doc)...)
	return errs
}

func schemaDefinitionsOf(doc *ast.Document) (defs []*ast.SchemaDefinition, extensions []*ast.SchemaDefinition) {
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.SchemaDefinition:
			defs = append(defs, def)
		case *ast.TypeExtension:
			if inner, ok := def.Definition.(*ast.SchemaDefinition); ok {
				extensions = append(extensions, inner)
			}
		}
	}
	return
}

func validateLoneSchemaDefinition(doc *ast.Document) []*Error {
	defs, _ := schemaDefinitionsOf(doc)
	if len(defs) <= 1 {
		return nil
	}
	var errs []*Error
	for _, def := range defs[1:] {
		errs = append(errs, newError(def, "only one schema definition is allowed"))
	}
	return errs
}

func validateUniqueOperationTypes(doc *ast.Document) []*Error {
	defs, extensions := schemaDefinitionsOf(doc)
	seen := map[string]*ast.RootOperationTypeDefinition{}
	var errs []*Error
	visit := func(def *ast.SchemaDefinition) {
		for _, ot := range def.OperationTypes {
			if _, ok := seen[ot.OperationType.Value]; ok {
				errs = append(errs, newError(ot, "the %v operation type already exists", ot.OperationType.Value))
			} else {
				seen[ot.OperationType.Value] = ot
			}
		}
	}
	for _, def := range defs {
		visit(def)
	}
	for _, def := range extensions {
		visit(def)
	}
	return errs
}

func typeDefinitionName(def ast.Definition) (*ast.Name, bool) {
	switch def := def.(type) {
	case *ast.ScalarTypeDefinition:
		return def.Name, true
	case *ast.ObjectTypeDefinition:
		return def.Name, true
	case *ast.InterfaceTypeDefinition:
		return def.Name, true
	case *ast.UnionTypeDefinition:
		return def.Name, true
	case *ast.EnumTypeDefinition:
		return def.Name, true
	case *ast.InputObjectTypeDefinition:
		return def.Name, true
	}
	return nil, false
}

func validateUniqueTypeNames(doc *ast.Document) []*Error {
	seen := map[string]*ast.Name{}
	var errs []*Error
	for _, def := range doc.Definitions {
		if name, ok := typeDefinitionName(def); ok {
			if _, ok := seen[name.Name]; ok {
				errs = append(errs, newError(name, "a type named %v already exists", name.Name))
			} else {
				seen[name.Name] = name
			}
		}
	}
	return errs
}

func validateUniqueDirectiveNames(doc *ast.Document) []*Error {
	seen := map[string]*ast.Name{}
	var errs []*Error
	for _, def := range doc.Definitions {
		if def, ok := def.(*ast.DirectiveDefinition); ok {
			if _, ok := seen[def.Name.Name]; ok {
				errs = append(errs, newError(def.Name, "a directive named @%v already exists", def.Name.Name))
			} else {
				seen[def.Name.Name] = def.Name
			}
		}
	}
	return errs
}

// extensionKind reports the underlying type definition kind an
// extension of def's shape must match, as a stable discriminator string.
func extensionKind(def ast.Definition) string {
	switch def.(type) {
	case *ast.ScalarTypeDefinition:
		return "scalar"
	case *ast.ObjectTypeDefinition:
		return "object"
	case *ast.InterfaceTypeDefinition:
		return "interface"
	case *ast.UnionTypeDefinition:
		return "union"
	case *ast.EnumTypeDefinition:
		return "enum"
	case *ast.InputObjectTypeDefinition:
		return "input object"
	case *ast.SchemaDefinition:
		return "schema"
	}
	return ""
}

func validatePossibleTypeExtensions(doc *ast.Document) []*Error {
	kindByName := map[string]string{}
	for _, def := range doc.Definitions {
		if name, ok := typeDefinitionName(def); ok {
			kindByName[name.Name] = extensionKind(def)
		}
	}

	var errs []*Error
	for _, def := range doc.Definitions {
		ext, ok := def.(*ast.TypeExtension)
		if !ok {
			continue
		}
		if _, ok := ext.Definition.(*ast.SchemaDefinition); ok {
			continue
		}
		name, ok := typeDefinitionName(ext.Definition)
		if !ok {
			continue
		}
		kind, exists := kindByName[name.Name]
		if !exists {
			errs = append(errs, newError(name, "cannot extend undefined type: %v", name.Name))
		} else if kind != extensionKind(ext.Definition) {
			errs = append(errs, newError(name, "cannot extend %v %v as %v", kind, name.Name, extensionKind(ext.Definition)))
		}
	}
	return errs
}

func validateUniqueEnumValueNames(doc *ast.Document) []*Error {
	seen := map[string]map[string]*ast.Name{}
	var errs []*Error
	check := func(typeName string, values []*ast.EnumValueDefinition) {
		names := seen[typeName]
		if names == nil {
			names = map[string]*ast.Name{}
			seen[typeName] = names
		}
		for _, v := range values {
			if _, ok := names[v.Value.Name]; ok {
				errs = append(errs, newError(v.Value, "the %v value already exists on %v", v.Value.Name, typeName))
			} else {
				names[v.Value.Name] = v.Value
			}
		}
	}
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.EnumTypeDefinition:
			check(def.Name.Name, def.Values)
		case *ast.TypeExtension:
			if inner, ok := def.Definition.(*ast.EnumTypeDefinition); ok {
				check(inner.Name.Name, inner.Values)
			}
		}
	}
	return errs
}

func validateUniqueFieldDefinitionNames(doc *ast.Document) []*Error {
	seen := map[string]map[string]*ast.Name{}
	var errs []*Error
	check := func(typeName string, fields []*ast.FieldDefinition) {
		names := seen[typeName]
		if names == nil {
			names = map[string]*ast.Name{}
			seen[typeName] = names
		}
		for _, f := range fields {
			if _, ok := names[f.Name.Name]; ok {
				errs = append(errs, newError(f.Name, "the %v field already exists on %v", f.Name.Name, typeName))
			} else {
				names[f.Name.Name] = f.Name
			}
		}
	}
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.ObjectTypeDefinition:
			check(def.Name.Name, def.Fields)
		case *ast.InterfaceTypeDefinition:
			check(def.Name.Name, def.Fields)
		case *ast.TypeExtension:
			switch inner := def.Definition.(type) {
			case *ast.ObjectTypeDefinition:
				check(inner.Name.Name, inner.Fields)
			case *ast.InterfaceTypeDefinition:
				check(inner.Name.Name, inner.Fields)
			}
		}
	}

	also := map[string]map[string]*ast.Name{}
	checkInput := func(typeName string, fields []*ast.InputValueDefinition) {
		names := also[typeName]
		if names == nil {
			names = map[string]*ast.Name{}
			also[typeName] = names
		}
		for _, f := range fields {
			if _, ok := names[f.Name.Name]; ok {
				errs = append(errs, newError(f.Name, "the %v field already exists on %v", f.Name.Name, typeName))
			} else {
				names[f.Name.Name] = f.Name
			}
		}
	}
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.InputObjectTypeDefinition:
			checkInput(def.Name.Name, def.Fields)
		case *ast.TypeExtension:
			if inner, ok := def.Definition.(*ast.InputObjectTypeDefinition); ok {
				checkInput(inner.Name.Name, inner.Fields)
			}
		}
	}
	return errs
}

func validateUniqueArgumentDefinitionNames(doc *ast.Document) []*Error {
	var errs []*Error
	checkArgs := func(owner string, args []*ast.InputValueDefinition) {
		seen := map[string]struct{}{}
		for _, a := range args {
			if _, ok := seen[a.Name.Name]; ok {
				errs = append(errs, newError(a.Name, "the %v argument already exists on %v", a.Name.Name, owner))
			} else {
				seen[a.Name.Name] = struct{}{}
			}
		}
	}

	ast.Inspect(doc, func(node ast.Node) bool {
		switch node := node.(type) {
		case *ast.FieldDefinition:
			checkArgs(node.Name.Name, node.Arguments)
		case *ast.DirectiveDefinition:
			checkArgs("@"+node.Name.Name, node.Arguments)
		}
		return true
	})
	return errs
}

// validateDirectiveApplications checks ProvidedRequiredArgumentsOnDirectives
// and KnownArgumentNamesOnDirectives for every directive application that
// decorates a type-system definition (as opposed to an executable document,
// which rules_directives.go and rules_arguments.go already cover).
func validateDirectiveApplications(doc *ast.Document) []*Error {
	directiveDefs := map[string]*ast.DirectiveDefinition{}
	for _, def := range doc.Definitions {
		if def, ok := def.(*ast.DirectiveDefinition); ok {
			directiveDefs[def.Name.Name] = def
		}
	}

	var errs []*Error
	seenSDLNode := map[ast.Node]bool{}
	ast.Inspect(doc, func(node ast.Node) bool {
		var directives []*ast.Directive
		switch node := node.(type) {
		case *ast.ScalarTypeDefinition:
			directives = node.Directives
		case *ast.ObjectTypeDefinition:
			directives = node.Directives
		case *ast.InterfaceTypeDefinition:
			directives = node.Directives
		case *ast.UnionTypeDefinition:
			directives = node.Directives
		case *ast.EnumTypeDefinition:
			directives = node.Directives
		case *ast.InputObjectTypeDefinition:
			directives = node.Directives
		case *ast.FieldDefinition:
			directives = node.Directives
		case *ast.InputValueDefinition:
			directives = node.Directives
		case *ast.EnumValueDefinition:
			directives = node.Directives
		case *ast.SchemaDefinition:
			directives = node.Directives
		default:
			return true
		}
		if seenSDLNode[node] {
			return true
		}
		seenSDLNode[node] = true

		for _, directive := range directives {
			def, ok := directiveDefs[directive.Name.Name]
			if !ok {
				continue // undefined directives are reported by build.go at schema-build time
			}

			argsByName := map[string]*ast.Argument{}
			for _, arg := range directive.Arguments {
				argsByName[arg.Name.Name] = arg
			}
			definedArgs := map[string]*ast.InputValueDefinition{}
			for _, a := range def.Arguments {
				definedArgs[a.Name.Name] = a
			}
			for _, arg := range directive.Arguments {
				if _, ok := definedArgs[arg.Name.Name]; !ok {
					errs = append(errs, newError(arg, "unknown argument %v on directive @%v", arg.Name.Name, directive.Name.Name))
				}
			}
			for _, a := range def.Arguments {
				if _, ok := a.Type.(*ast.NonNullType); ok && a.DefaultValue == nil {
					if _, ok := argsByName[a.Name.Name]; !ok {
						errs = append(errs, newError(directive, "the %v argument is required on directive @%v", a.Name.Name, directive.Name.Name))
					}
				}
			}
		}
		return true
	})
	return errs
}
