package parser

import (
	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/token"
)

// parseOptionalDescription consumes a leading string value, if present, to
// use as a definition's description. Per the grammar, descriptions are
// ordinary (possibly block) string values immediately preceding a
// type-system definition.
func (p *parser) parseOptionalDescription() *ast.StringValue {
	if t := p.peek(); t.Token == token.STRING_VALUE {
		p.consumeToken()
		return &ast.StringValue{Value: t.Value, Block: t.IsBlock, Literal: t.Position}
	}
	return nil
}

func (p *parser) parseTypeSystemDefinition() ast.Definition {
	p.enter()

	description := p.parseOptionalDescription()

	var ret ast.Definition
	switch t := p.peek(); {
	case p.isKeyword(t, "schema"):
		ret = p.parseSchemaDefinition(description)
	case p.isKeyword(t, "scalar"):
		ret = p.parseScalarTypeDefinition(description)
	case p.isKeyword(t, "type"):
		ret = p.parseObjectTypeDefinition(description)
	case p.isKeyword(t, "interface"):
		ret = p.parseInterfaceTypeDefinition(description)
	case p.isKeyword(t, "union"):
		ret = p.parseUnionTypeDefinition(description)
	case p.isKeyword(t, "enum"):
		ret = p.parseEnumTypeDefinition(description)
	case p.isKeyword(t, "input"):
		ret = p.parseInputObjectTypeDefinition(description)
	case p.isKeyword(t, "directive"):
		ret = p.parseDirectiveDefinition(description)
	default:
		panic(p.errorf(t.Position, "expected type system definition"))
	}

	p.exit()
	return ret
}

func (p *parser) parseTypeSystemExtension() ast.Definition {
	p.enter()

	if t := p.peek(); !p.isKeyword(t, "extend") {
		panic(p.errorf(t.Position, `expected "extend"`))
	}
	keyword := p.peek().Position
	p.consumeToken()

	var inner ast.Definition
	switch t := p.peek(); {
	case p.isKeyword(t, "schema"):
		inner = p.parseSchemaDefinition(nil)
	case p.isKeyword(t, "scalar"):
		inner = p.parseScalarTypeDefinition(nil)
	case p.isKeyword(t, "type"):
		inner = p.parseObjectTypeDefinition(nil)
	case p.isKeyword(t, "interface"):
		inner = p.parseInterfaceTypeDefinition(nil)
	case p.isKeyword(t, "union"):
		inner = p.parseUnionTypeDefinition(nil)
	case p.isKeyword(t, "enum"):
		inner = p.parseEnumTypeDefinition(nil)
	case p.isKeyword(t, "input"):
		inner = p.parseInputObjectTypeDefinition(nil)
	default:
		panic(p.errorf(t.Position, "expected extendable type system definition"))
	}

	p.exit()
	return &ast.TypeExtension{Keyword: keyword, Definition: inner}
}

func (p *parser) parseSchemaDefinition(description *ast.StringValue) *ast.SchemaDefinition {
	p.enter()

	keyword := p.peek().Position
	p.consumeToken() // "schema"

	ret := &ast.SchemaDefinition{Keyword: keyword, Description: description}
	ret.Directives = p.parseOptionalDirectives()

	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "{" {
		panic(p.errorf(t.Position, "expected {"))
	}
	p.consumeToken()

	for {
		if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "}" {
			p.consumeToken()
			break
		}
		ot := p.peek()
		if ot.Token != token.NAME || !operationTypes[ot.Value] {
			panic(p.errorf(ot.Position, "expected operation type"))
		}
		p.consumeToken()
		if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != ":" {
			panic(p.errorf(t.Position, "expected colon"))
		}
		p.consumeToken()
		ret.OperationTypes = append(ret.OperationTypes, &ast.RootOperationTypeDefinition{
			OperationType: &ast.OperationType{Value: ot.Value, ValuePosition: ot.Position},
			Type:          p.parseNamedType(),
		})
	}

	p.exit()
	return ret
}

func (p *parser) parseScalarTypeDefinition(description *ast.StringValue) *ast.ScalarTypeDefinition {
	p.enter()

	keyword := p.peek().Position
	p.consumeToken() // "scalar"

	ret := &ast.ScalarTypeDefinition{
		Keyword:     keyword,
		Description: description,
		Name:        p.parseName(),
		Directives:  p.parseOptionalDirectives(),
	}

	p.exit()
	return ret
}

func (p *parser) parseImplementsInterfaces() []*ast.NamedType {
	var ret []*ast.NamedType
	if t := p.peek(); !p.isKeyword(t, "implements") {
		return ret
	}
	p.consumeToken()

	// The leading "&" before the first interface is optional.
	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "&" {
		p.consumeToken()
	}

	ret = append(ret, p.parseNamedType())
	for {
		if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "&" {
			break
		}
		p.consumeToken()
		ret = append(ret, p.parseNamedType())
	}
	return ret
}

func (p *parser) parseOptionalFieldsDefinition() []*ast.FieldDefinition {
	var ret []*ast.FieldDefinition
	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "{" {
		return ret
	}
	p.consumeToken()

	for {
		if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "}" {
			p.consumeToken()
			break
		}
		ret = append(ret, p.parseFieldDefinition())
	}
	return ret
}

func (p *parser) parseFieldDefinition() *ast.FieldDefinition {
	p.enter()

	description := p.parseOptionalDescription()
	name := p.parseName()
	args := p.parseOptionalArgumentsDefinition()

	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != ":" {
		panic(p.errorf(t.Position, "expected colon"))
	}
	p.consumeToken()

	ret := &ast.FieldDefinition{
		Description: description,
		Name:        name,
		Arguments:   args,
		Type:        p.parseType(),
		Directives:  p.parseOptionalDirectives(),
	}

	p.exit()
	return ret
}

func (p *parser) parseOptionalArgumentsDefinition() []*ast.InputValueDefinition {
	var ret []*ast.InputValueDefinition
	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "(" {
		return ret
	}
	p.consumeToken()

	for {
		if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == ")" {
			p.consumeToken()
			break
		}
		ret = append(ret, p.parseInputValueDefinition())
	}
	return ret
}

func (p *parser) parseInputValueDefinition() *ast.InputValueDefinition {
	p.enter()

	description := p.parseOptionalDescription()
	name := p.parseName()

	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != ":" {
		panic(p.errorf(t.Position, "expected colon"))
	}
	p.consumeToken()

	ret := &ast.InputValueDefinition{
		Description: description,
		Name:        name,
		Type:        p.parseType(),
	}
	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "=" {
		p.consumeToken()
		ret.DefaultValue = p.parseValue(true)
	}
	ret.Directives = p.parseOptionalDirectives()

	p.exit()
	return ret
}

func (p *parser) parseObjectTypeDefinition(description *ast.StringValue) *ast.ObjectTypeDefinition {
	p.enter()

	keyword := p.peek().Position
	p.consumeToken() // "type"

	ret := &ast.ObjectTypeDefinition{
		Keyword:     keyword,
		Description: description,
		Name:        p.parseName(),
		Interfaces:  p.parseImplementsInterfaces(),
		Directives:  p.parseOptionalDirectives(),
		Fields:      p.parseOptionalFieldsDefinition(),
	}

	p.exit()
	return ret
}

func (p *parser) parseInterfaceTypeDefinition(description *ast.StringValue) *ast.InterfaceTypeDefinition {
	p.enter()

	keyword := p.peek().Position
	p.consumeToken() // "interface"

	ret := &ast.InterfaceTypeDefinition{
		Keyword:     keyword,
		Description: description,
		Name:        p.parseName(),
		Interfaces:  p.parseImplementsInterfaces(),
		Directives:  p.parseOptionalDirectives(),
		Fields:      p.parseOptionalFieldsDefinition(),
	}

	p.exit()
	return ret
}

func (p *parser) parseUnionTypeDefinition(description *ast.StringValue) *ast.UnionTypeDefinition {
	p.enter()

	keyword := p.peek().Position
	p.consumeToken() // "union"

	ret := &ast.UnionTypeDefinition{
		Keyword:     keyword,
		Description: description,
		Name:        p.parseName(),
		Directives:  p.parseOptionalDirectives(),
	}

	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "=" {
		p.consumeToken()
		if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "|" {
			p.consumeToken()
		}
		ret.MemberTypes = append(ret.MemberTypes, p.parseNamedType())
		for {
			if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "|" {
				break
			}
			p.consumeToken()
			ret.MemberTypes = append(ret.MemberTypes, p.parseNamedType())
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseEnumTypeDefinition(description *ast.StringValue) *ast.EnumTypeDefinition {
	p.enter()

	keyword := p.peek().Position
	p.consumeToken() // "enum"

	ret := &ast.EnumTypeDefinition{
		Keyword:     keyword,
		Description: description,
		Name:        p.parseName(),
		Directives:  p.parseOptionalDirectives(),
	}

	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "{" {
		p.consumeToken()
		for {
			if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "}" {
				p.consumeToken()
				break
			}
			ret.Values = append(ret.Values, p.parseEnumValueDefinition())
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseEnumValueDefinition() *ast.EnumValueDefinition {
	p.enter()

	description := p.parseOptionalDescription()
	if t := p.peek(); t.Token != token.NAME {
		panic(p.errorf(t.Position, "expected enum value"))
	}
	value := p.parseName()

	ret := &ast.EnumValueDefinition{
		Description: description,
		Value:       value,
		Directives:  p.parseOptionalDirectives(),
	}

	p.exit()
	return ret
}

func (p *parser) parseInputObjectTypeDefinition(description *ast.StringValue) *ast.InputObjectTypeDefinition {
	p.enter()

	keyword := p.peek().Position
	p.consumeToken() // "input"

	ret := &ast.InputObjectTypeDefinition{
		Keyword:     keyword,
		Description: description,
		Name:        p.parseName(),
		Directives:  p.parseOptionalDirectives(),
	}

	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "{" {
		p.consumeToken()
		for {
			if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "}" {
				p.consumeToken()
				break
			}
			ret.Fields = append(ret.Fields, p.parseInputValueDefinition())
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseDirectiveDefinition(description *ast.StringValue) *ast.DirectiveDefinition {
	p.enter()

	keyword := p.peek().Position
	p.consumeToken() // "directive"

	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "@" {
		panic(p.errorf(t.Position, "expected @"))
	}
	p.consumeToken()

	ret := &ast.DirectiveDefinition{
		Keyword:     keyword,
		Description: description,
		Name:        p.parseName(),
		Arguments:   p.parseOptionalArgumentsDefinition(),
	}

	if t := p.peek(); p.isKeyword(t, "repeatable") {
		ret.Repeatable = true
		p.consumeToken()
	}

	if t := p.peek(); !p.isKeyword(t, "on") {
		panic(p.errorf(t.Position, `expected "on"`))
	}
	p.consumeToken()

	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "|" {
		p.consumeToken()
	}
	ret.Locations = append(ret.Locations, p.parseDirectiveLocation())
	for {
		if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "|" {
			break
		}
		p.consumeToken()
		ret.Locations = append(ret.Locations, p.parseDirectiveLocation())
	}

	p.exit()
	return ret
}

func (p *parser) parseDirectiveLocation() *ast.DirectiveDefinitionLocation {
	t := p.peek()
	if t.Token != token.NAME {
		panic(p.errorf(t.Position, "expected directive location"))
	}
	p.consumeToken()
	return &ast.DirectiveDefinitionLocation{Value: t.Value, ValuePosition: t.Position}
}
