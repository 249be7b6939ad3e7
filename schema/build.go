package schema

import (
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/parser"
)

// BuildSchema parses src as an SDL document and builds a Schema from it. src
// must contain only type system definitions (no executable operations, no
// "extend" clauses); use ExtendSchema to layer extensions onto a schema
// that's already been built.
func BuildSchema(src string) (*Schema, error) {
	doc, errs := parser.ParseDocument([]byte(src))
	if len(errs) > 0 {
		return nil, errs[0]
	}

	b := newSchemaBuilder(nil)
	if err := b.addDocument(doc, false); err != nil {
		return nil, err
	}

	def, err := b.schemaDefinition()
	if err != nil {
		return nil, err
	}
	return New(def)
}

// ExtendSchema parses src as an SDL document of type extensions and/or
// additional type and directive definitions, and returns a new Schema
// combining it with s. s itself is left unmodified.
func ExtendSchema(s *Schema, src string) (*Schema, error) {
	doc, errs := parser.ParseDocument([]byte(src))
	if len(errs) > 0 {
		return nil, errs[0]
	}

	b := newSchemaBuilder(s)
	if err := b.addDocument(doc, true); err != nil {
		return nil, err
	}

	def, err := b.schemaDefinition()
	if err != nil {
		return nil, err
	}
	return New(def)
}

// schemaBuilder accumulates the named types and directive definitions
// discovered while walking an SDL document, resolving forward and
// cross-type references via a shared types map. Types are built in three
// passes: stub creation (so every name resolves to something), body filling
// (fields, values, member types), and finally directives/default values
// (which may themselves reference any type, now that all bodies exist).
type schemaBuilder struct {
	types          map[string]NamedType
	directiveDefs  map[string]*DirectiveDefinition
	schemaDef      *ast.SchemaDefinition
	objectDefs     map[*ObjectType][]*ast.ObjectTypeDefinition
	interfaceDefs  map[*InterfaceType][]*ast.InterfaceTypeDefinition
	unionDefs      map[*UnionType][]*ast.UnionTypeDefinition
	enumDefs       map[*EnumType][]*ast.EnumTypeDefinition
	inputDefs      map[*InputObjectType][]*ast.InputObjectTypeDefinition
	scalarDefs     map[*ScalarType][]*ast.ScalarTypeDefinition
	additionalNew  []NamedType
	baseDefinition *SchemaDefinition
}

func newSchemaBuilder(base *Schema) *schemaBuilder {
	b := &schemaBuilder{
		types:         map[string]NamedType{},
		directiveDefs: map[string]*DirectiveDefinition{},
		objectDefs:    map[*ObjectType][]*ast.ObjectTypeDefinition{},
		interfaceDefs: map[*InterfaceType][]*ast.InterfaceTypeDefinition{},
		unionDefs:     map[*UnionType][]*ast.UnionTypeDefinition{},
		enumDefs:      map[*EnumType][]*ast.EnumTypeDefinition{},
		inputDefs:     map[*InputObjectType][]*ast.InputObjectTypeDefinition{},
		scalarDefs:    map[*ScalarType][]*ast.ScalarTypeDefinition{},
	}
	for name, t := range BuiltInTypes {
		b.types[name] = t
	}
	b.directiveDefs["skip"] = SkipDirective
	b.directiveDefs["include"] = IncludeDirective
	b.directiveDefs["deprecated"] = DeprecatedDirective

	if base != nil {
		b.baseDefinition = base.Definition().Clone()
		Inspect(b.baseDefinition, func(node interface{}) bool {
			if t, ok := node.(NamedType); ok {
				b.types[t.NamedType()] = t
			}
			return true
		})
		for name, def := range b.baseDefinition.DirectiveDefinitions {
			b.directiveDefs[name] = def
		}
	}
	return b
}

func (b *schemaBuilder) addDocument(doc *ast.Document, allowExtensions bool) error {
	// Pass 0: directive definitions, so field/argument directives resolve
	// regardless of source order.
	for _, def := range doc.Definitions {
		if d, ok := def.(*ast.DirectiveDefinition); ok {
			name := d.Name.Name
			if _, ok := b.directiveDefs[name]; ok {
				return fmt.Errorf("duplicate directive definition: @%v", name)
			}
			dd := &DirectiveDefinition{Description: descriptionOf(d.Description)}
			for _, loc := range d.Locations {
				dd.Locations = append(dd.Locations, DirectiveLocation(loc.Value))
			}
			b.directiveDefs[name] = dd
		}
	}

	// Pass 1: stub every newly defined type so forward references resolve.
	for _, def := range doc.Definitions {
		if _, ok := def.(*ast.TypeExtension); ok {
			continue
		}
		name, stub, err := b.stubOf(def)
		if err != nil {
			return err
		}
		if stub == nil {
			continue
		}
		if _, ok := b.types[name]; ok {
			return fmt.Errorf("duplicate type definition: %v", name)
		}
		b.types[name] = stub
		b.additionalNew = append(b.additionalNew, stub)
	}

	// Pass 2: fill bodies (fields, values, member types, implemented
	// interfaces) using the now-complete types map.
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.SchemaDefinition:
			if b.schemaDef != nil {
				return fmt.Errorf("multiple schema definitions")
			}
			b.schemaDef = def
		case *ast.ScalarTypeDefinition:
			t := b.types[def.Name.Name].(*ScalarType)
			t.Name = def.Name.Name
			t.Description = descriptionOf(def.Description)
			b.scalarDefs[t] = append(b.scalarDefs[t], def)
		case *ast.ObjectTypeDefinition:
			t := b.types[def.Name.Name].(*ObjectType)
			if err := b.fillObject(t, def); err != nil {
				return err
			}
			b.objectDefs[t] = append(b.objectDefs[t], def)
		case *ast.InterfaceTypeDefinition:
			t := b.types[def.Name.Name].(*InterfaceType)
			if err := b.fillInterface(t, def); err != nil {
				return err
			}
			b.interfaceDefs[t] = append(b.interfaceDefs[t], def)
		case *ast.UnionTypeDefinition:
			t := b.types[def.Name.Name].(*UnionType)
			if err := b.fillUnion(t, def); err != nil {
				return err
			}
			b.unionDefs[t] = append(b.unionDefs[t], def)
		case *ast.EnumTypeDefinition:
			t := b.types[def.Name.Name].(*EnumType)
			b.fillEnum(t, def)
			b.enumDefs[t] = append(b.enumDefs[t], def)
		case *ast.InputObjectTypeDefinition:
			t := b.types[def.Name.Name].(*InputObjectType)
			if err := b.fillInputObject(t, def); err != nil {
				return err
			}
			b.inputDefs[t] = append(b.inputDefs[t], def)
		case *ast.TypeExtension:
			if !allowExtensions {
				return fmt.Errorf("extensions are not allowed here")
			}
			if err := b.applyExtension(def); err != nil {
				return err
			}
		case *ast.DirectiveDefinition:
			// handled in pass 0
		default:
			return fmt.Errorf("unsupported SDL definition: %T", def)
		}
	}

	// Pass 3: directives and default values, now that every type's body
	// (including any types extensions added to) is in place.
	for t, defs := range b.scalarDefs {
		for _, def := range defs {
			dirs, err := b.resolveDirectives(def.Directives)
			if err != nil {
				return err
			}
			t.Directives = append(t.Directives, dirs...)
		}
	}
	for t, defs := range b.objectDefs {
		for _, def := range defs {
			dirs, err := b.resolveDirectives(def.Directives)
			if err != nil {
				return err
			}
			t.Directives = append(t.Directives, dirs...)
			if err := b.fillFieldArgumentsAndDirectives(t.Fields, def.Fields); err != nil {
				return err
			}
		}
	}
	for t, defs := range b.interfaceDefs {
		for _, def := range defs {
			dirs, err := b.resolveDirectives(def.Directives)
			if err != nil {
				return err
			}
			t.Directives = append(t.Directives, dirs...)
			if err := b.fillFieldArgumentsAndDirectives(t.Fields, def.Fields); err != nil {
				return err
			}
		}
	}
	for t, defs := range b.unionDefs {
		for _, def := range defs {
			dirs, err := b.resolveDirectives(def.Directives)
			if err != nil {
				return err
			}
			t.Directives = append(t.Directives, dirs...)
		}
	}
	for t, defs := range b.enumDefs {
		for _, def := range defs {
			dirs, err := b.resolveDirectives(def.Directives)
			if err != nil {
				return err
			}
			t.Directives = append(t.Directives, dirs...)
			for _, v := range def.Values {
				vd := t.Values[v.Value.Name]
				vdirs, err := b.resolveDirectives(v.Directives)
				if err != nil {
					return err
				}
				vd.Directives = vdirs
				if reason, ok := deprecationReason(v.Directives); ok {
					vd.DeprecationReason = reason
				}
			}
		}
	}
	for t, defs := range b.inputDefs {
		for _, def := range defs {
			dirs, err := b.resolveDirectives(def.Directives)
			if err != nil {
				return err
			}
			t.Directives = append(t.Directives, dirs...)
			for _, f := range def.Fields {
				fd := t.Fields[f.Name.Name]
				if err := b.fillInputValueDirectivesAndDefault(fd, f); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func descriptionOf(s *ast.StringValue) string {
	if s == nil {
		return ""
	}
	return s.Value
}

func deprecationReason(directives []*ast.Directive) (string, bool) {
	for _, d := range directives {
		if d.Name.Name != "deprecated" {
			continue
		}
		for _, arg := range d.Arguments {
			if arg.Name.Name == "reason" {
				if s, ok := arg.Value.(*ast.StringValue); ok {
					return s.Value, true
				}
			}
		}
		return "No longer supported", true
	}
	return "", false
}

// stubOf returns a zero-valued named type for def, ready to have its body
// filled in once every type name is known. Extensions and non-type
// definitions return a nil stub.
func (b *schemaBuilder) stubOf(def ast.Definition) (string, NamedType, error) {
	switch def := def.(type) {
	case *ast.ScalarTypeDefinition:
		return def.Name.Name, &ScalarType{}, nil
	case *ast.ObjectTypeDefinition:
		return def.Name.Name, &ObjectType{}, nil
	case *ast.InterfaceTypeDefinition:
		return def.Name.Name, &InterfaceType{}, nil
	case *ast.UnionTypeDefinition:
		return def.Name.Name, &UnionType{}, nil
	case *ast.EnumTypeDefinition:
		return def.Name.Name, &EnumType{}, nil
	case *ast.InputObjectTypeDefinition:
		return def.Name.Name, &InputObjectType{}, nil
	case *ast.SchemaDefinition, *ast.DirectiveDefinition:
		return "", nil, nil
	default:
		return "", nil, fmt.Errorf("unsupported SDL definition: %T", def)
	}
}

func (b *schemaBuilder) resolveType(t ast.Type) (Type, error) {
	switch t := t.(type) {
	case *ast.NamedType:
		named, ok := b.types[t.Name.Name]
		if !ok {
			return nil, fmt.Errorf("unknown type: %v", t.Name.Name)
		}
		return named, nil
	case *ast.ListType:
		inner, err := b.resolveType(t.Type)
		if err != nil {
			return nil, err
		}
		return NewListType(inner), nil
	case *ast.NonNullType:
		inner, err := b.resolveType(t.Type)
		if err != nil {
			return nil, err
		}
		return NewNonNullType(inner), nil
	default:
		return nil, fmt.Errorf("unsupported type reference: %T", t)
	}
}

func (b *schemaBuilder) resolveDirectives(astDirectives []*ast.Directive) ([]*Directive, error) {
	var ret []*Directive
	for _, d := range astDirectives {
		def, ok := b.directiveDefs[d.Name.Name]
		if !ok {
			return nil, fmt.Errorf("unknown directive: @%v", d.Name.Name)
		}
		args, err := b.resolveArguments(d.Arguments, def.Arguments)
		if err != nil {
			return nil, fmt.Errorf("@%v: %v", d.Name.Name, err)
		}
		ret = append(ret, &Directive{Definition: def, Arguments: args})
	}
	return ret, nil
}

func (b *schemaBuilder) resolveArguments(astArgs []*ast.Argument, defs map[string]*InputValueDefinition) ([]*Argument, error) {
	provided := map[string]ast.Value{}
	for _, a := range astArgs {
		provided[a.Name.Name] = a.Value
	}
	for name := range provided {
		if _, ok := defs[name]; !ok {
			return nil, fmt.Errorf("unknown argument: %v", name)
		}
	}

	var ret []*Argument
	for name, def := range defs {
		if v, ok := provided[name]; ok {
			coerced, err := CoerceLiteral(v, def.Type, nil)
			if err != nil {
				return nil, fmt.Errorf("argument %v: %v", name, err)
			}
			ret = append(ret, &Argument{Name: name, Value: coerced})
		} else if def.DefaultValue != nil {
			v := def.DefaultValue
			if v == Null {
				v = nil
			}
			ret = append(ret, &Argument{Name: name, Value: v})
		} else if IsNonNullType(def.Type) {
			return nil, fmt.Errorf("argument %v is required", name)
		}
	}
	return ret, nil
}

func (b *schemaBuilder) fillObject(t *ObjectType, def *ast.ObjectTypeDefinition) error {
	if t.Name == "" {
		t.Name = def.Name.Name
		t.Description = descriptionOf(def.Description)
	}
	if t.Fields == nil {
		t.Fields = map[string]*FieldDefinition{}
	}
	for _, f := range def.Fields {
		if _, ok := t.Fields[f.Name.Name]; ok {
			return fmt.Errorf("duplicate field: %v.%v", t.Name, f.Name.Name)
		}
		fd, err := b.fieldStub(f)
		if err != nil {
			return err
		}
		t.Fields[f.Name.Name] = fd
	}
	for _, i := range def.Interfaces {
		iface, ok := b.types[i.Name.Name].(*InterfaceType)
		if !ok {
			return fmt.Errorf("%v is not an interface", i.Name.Name)
		}
		t.ImplementedInterfaces = append(t.ImplementedInterfaces, iface)
	}
	if t.IsTypeOf == nil {
		t.IsTypeOf = func(interface{}) bool { return false }
	}
	return nil
}

func (b *schemaBuilder) fillInterface(t *InterfaceType, def *ast.InterfaceTypeDefinition) error {
	if len(def.Interfaces) > 0 {
		return fmt.Errorf("%v: interfaces implementing interfaces are not supported", def.Name.Name)
	}
	if t.Name == "" {
		t.Name = def.Name.Name
		t.Description = descriptionOf(def.Description)
	}
	if t.Fields == nil {
		t.Fields = map[string]*FieldDefinition{}
	}
	for _, f := range def.Fields {
		if _, ok := t.Fields[f.Name.Name]; ok {
			return fmt.Errorf("duplicate field: %v.%v", t.Name, f.Name.Name)
		}
		fd, err := b.fieldStub(f)
		if err != nil {
			return err
		}
		t.Fields[f.Name.Name] = fd
	}
	return nil
}

func (b *schemaBuilder) fieldStub(f *ast.FieldDefinition) (*FieldDefinition, error) {
	typ, err := b.resolveType(f.Type)
	if err != nil {
		return nil, fmt.Errorf("field %v: %v", f.Name.Name, err)
	}
	fd := &FieldDefinition{
		Description: descriptionOf(f.Description),
		Type:        typ,
	}
	if len(f.Arguments) > 0 {
		fd.Arguments = map[string]*InputValueDefinition{}
		for _, a := range f.Arguments {
			if _, ok := fd.Arguments[a.Name.Name]; ok {
				return nil, fmt.Errorf("duplicate argument: %v(%v:)", f.Name.Name, a.Name.Name)
			}
			argType, err := b.resolveType(a.Type)
			if err != nil {
				return nil, fmt.Errorf("argument %v: %v", a.Name.Name, err)
			}
			fd.Arguments[a.Name.Name] = &InputValueDefinition{
				Description: descriptionOf(a.Description),
				Type:        argType,
			}
		}
	}
	return fd, nil
}

func (b *schemaBuilder) fillFieldArgumentsAndDirectives(fields map[string]*FieldDefinition, defs []*ast.FieldDefinition) error {
	for _, f := range defs {
		fd := fields[f.Name.Name]
		dirs, err := b.resolveDirectives(f.Directives)
		if err != nil {
			return fmt.Errorf("field %v: %v", f.Name.Name, err)
		}
		fd.Directives = dirs
		if reason, ok := deprecationReason(f.Directives); ok {
			fd.DeprecationReason = reason
		}
		for _, a := range f.Arguments {
			if err := b.fillInputValueDirectivesAndDefault(fd.Arguments[a.Name.Name], a); err != nil {
				return fmt.Errorf("field %v argument %v: %v", f.Name.Name, a.Name.Name, err)
			}
		}
	}
	return nil
}

func (b *schemaBuilder) fillInputValueDirectivesAndDefault(v *InputValueDefinition, def *ast.InputValueDefinition) error {
	dirs, err := b.resolveDirectives(def.Directives)
	if err != nil {
		return err
	}
	v.Directives = dirs
	if def.DefaultValue != nil {
		coerced, err := CoerceLiteral(def.DefaultValue, v.Type, nil)
		if err != nil {
			return fmt.Errorf("default value: %v", err)
		}
		if coerced == nil {
			v.DefaultValue = Null
		} else {
			v.DefaultValue = coerced
		}
	}
	return nil
}

func (b *schemaBuilder) fillUnion(t *UnionType, def *ast.UnionTypeDefinition) error {
	if t.Name == "" {
		t.Name = def.Name.Name
		t.Description = descriptionOf(def.Description)
	}
	for _, m := range def.MemberTypes {
		obj, ok := b.types[m.Name.Name].(*ObjectType)
		if !ok {
			return fmt.Errorf("union member %v is not an object type", m.Name.Name)
		}
		t.MemberTypes = append(t.MemberTypes, obj)
	}
	return nil
}

func (b *schemaBuilder) fillEnum(t *EnumType, def *ast.EnumTypeDefinition) {
	if t.Name == "" {
		t.Name = def.Name.Name
		t.Description = descriptionOf(def.Description)
	}
	if t.Values == nil {
		t.Values = map[string]*EnumValueDefinition{}
	}
	for _, v := range def.Values {
		t.Values[v.Value.Name] = &EnumValueDefinition{
			Description: descriptionOf(v.Description),
		}
	}
}

func (b *schemaBuilder) fillInputObject(t *InputObjectType, def *ast.InputObjectTypeDefinition) error {
	if t.Name == "" {
		t.Name = def.Name.Name
		t.Description = descriptionOf(def.Description)
	}
	if t.Fields == nil {
		t.Fields = map[string]*InputValueDefinition{}
	}
	for _, f := range def.Fields {
		if _, ok := t.Fields[f.Name.Name]; ok {
			return fmt.Errorf("duplicate field: %v.%v", t.Name, f.Name.Name)
		}
		typ, err := b.resolveType(f.Type)
		if err != nil {
			return fmt.Errorf("field %v: %v", f.Name.Name, err)
		}
		t.Fields[f.Name.Name] = &InputValueDefinition{
			Description: descriptionOf(f.Description),
			Type:        typ,
		}
	}
	return nil
}

func (b *schemaBuilder) applyExtension(ext *ast.TypeExtension) error {
	switch def := ext.Definition.(type) {
	case *ast.SchemaDefinition:
		if b.schemaDef == nil {
			b.schemaDef = &ast.SchemaDefinition{}
		}
		b.schemaDef.OperationTypes = append(b.schemaDef.OperationTypes, def.OperationTypes...)
		b.schemaDef.Directives = append(b.schemaDef.Directives, def.Directives...)
		return nil
	case *ast.ScalarTypeDefinition:
		t, ok := b.types[def.Name.Name].(*ScalarType)
		if !ok {
			return fmt.Errorf("cannot extend unknown scalar type: %v", def.Name.Name)
		}
		b.scalarDefs[t] = append(b.scalarDefs[t], def)
		return nil
	case *ast.ObjectTypeDefinition:
		t, ok := b.types[def.Name.Name].(*ObjectType)
		if !ok {
			return fmt.Errorf("cannot extend unknown object type: %v", def.Name.Name)
		}
		if err := b.fillObject(t, &ast.ObjectTypeDefinition{Name: def.Name, Fields: def.Fields, Interfaces: def.Interfaces}); err != nil {
			return err
		}
		b.objectDefs[t] = append(b.objectDefs[t], def)
		return nil
	case *ast.InterfaceTypeDefinition:
		t, ok := b.types[def.Name.Name].(*InterfaceType)
		if !ok {
			return fmt.Errorf("cannot extend unknown interface type: %v", def.Name.Name)
		}
		if err := b.fillInterface(t, &ast.InterfaceTypeDefinition{Name: def.Name, Fields: def.Fields, Interfaces: def.Interfaces}); err != nil {
			return err
		}
		b.interfaceDefs[t] = append(b.interfaceDefs[t], def)
		return nil
	case *ast.UnionTypeDefinition:
		t, ok := b.types[def.Name.Name].(*UnionType)
		if !ok {
			return fmt.Errorf("cannot extend unknown union type: %v", def.Name.Name)
		}
		if err := b.fillUnion(t, &ast.UnionTypeDefinition{Name: def.Name, MemberTypes: def.MemberTypes}); err != nil {
			return err
		}
		b.unionDefs[t] = append(b.unionDefs[t], def)
		return nil
	case *ast.EnumTypeDefinition:
		t, ok := b.types[def.Name.Name].(*EnumType)
		if !ok {
			return fmt.Errorf("cannot extend unknown enum type: %v", def.Name.Name)
		}
		b.fillEnum(t, &ast.EnumTypeDefinition{Name: def.Name, Values: def.Values})
		b.enumDefs[t] = append(b.enumDefs[t], def)
		return nil
	case *ast.InputObjectTypeDefinition:
		t, ok := b.types[def.Name.Name].(*InputObjectType)
		if !ok {
			return fmt.Errorf("cannot extend unknown input object type: %v", def.Name.Name)
		}
		if err := b.fillInputObject(t, &ast.InputObjectTypeDefinition{Name: def.Name, Fields: def.Fields}); err != nil {
			return err
		}
		b.inputDefs[t] = append(b.inputDefs[t], def)
		return nil
	default:
		return fmt.Errorf("unsupported type extension: %T", def)
	}
}

func (b *schemaBuilder) schemaDefinition() (*SchemaDefinition, error) {
	var def *SchemaDefinition
	if b.baseDefinition != nil {
		def = b.baseDefinition
	} else {
		def = &SchemaDefinition{}
	}
	def.DirectiveDefinitions = b.directiveDefs
	def.AdditionalTypes = append(def.AdditionalTypes, b.additionalNew...)

	if b.schemaDef != nil {
		dirs, err := b.resolveDirectives(b.schemaDef.Directives)
		if err != nil {
			return nil, err
		}
		def.Directives = append(def.Directives, dirs...)
		for _, ot := range b.schemaDef.OperationTypes {
			obj, ok := b.types[ot.Type.Name.Name].(*ObjectType)
			if !ok {
				return nil, fmt.Errorf("%v is not an object type", ot.Type.Name.Name)
			}
			switch ot.OperationType.Value {
			case "query":
				def.Query = obj
			case "mutation":
				def.Mutation = obj
			case "subscription":
				def.Subscription = obj
			}
		}
	} else if def.Query == nil {
		if obj, ok := b.types["Query"].(*ObjectType); ok {
			def.Query = obj
		}
		if obj, ok := b.types["Mutation"].(*ObjectType); ok {
			def.Mutation = obj
		}
		if obj, ok := b.types["Subscription"].(*ObjectType); ok {
			def.Subscription = obj
		}
	}

	if def.Query == nil {
		return nil, fmt.Errorf("schema must define a query type")
	}
	return def, nil
}
