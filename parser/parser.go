// Package parser implements a recursive-descent parser for the GraphQL
// grammar: executable documents (operations and fragments) and SDL
// type-system documents (definitions and extensions) both parse into the
// same ast.Document tree.
package parser

import (
	"fmt"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/scanner"
	"github.com/nilsbr/gqlcore/token"
)

// Error represents a single syntax error, with the position of the token
// that triggered it.
type Error struct {
	message string
	Line    int
	Column  int
}

func (err *Error) Error() string {
	return err.message
}

// ParseDocument parses src as a GraphQL document, returning it along with
// any errors. The parser stops at the first syntax error, and doc is then
// nil. Lexical errors from the scanner do not stop parsing, so errs may be
// non-empty while doc is non-nil.
func ParseDocument(src []byte) (doc *ast.Document, errs []*Error) {
	p := newParser(src)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*Error); ok {
				errs = p.errors
			} else {
				panic(r)
			}
		}
	}()
	return p.parseDocument(), p.errors
}

// ParseValue parses src as a single GraphQL value literal.
func ParseValue(src []byte) (value ast.Value, errs []*Error) {
	p := newParser(src)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*Error); ok {
				errs = p.errors
			} else {
				panic(r)
			}
		}
	}()
	return p.parseValue(false), p.errors
}

type parserToken struct {
	Token    token.Token
	Value    string
	IsBlock  bool
	Position token.Position
}

type parser struct {
	errors    []*Error
	tokens    []*parserToken
	eof       *parserToken
	recursion int
}

func newParser(src []byte) *parser {
	var tokens []*parserToken
	s := scanner.New(src, 0)
	for s.Scan() {
		tokens = append(tokens, &parserToken{
			Token:    s.Token(),
			Value:    s.StringValue(),
			IsBlock:  s.IsBlockString(),
			Position: s.Position(),
		})
	}
	ret := &parser{
		errors: make([]*Error, len(s.Errors())),
		tokens: tokens,
		eof:    &parserToken{Token: token.EOF, Position: s.EndPosition()},
	}
	for i, err := range s.Errors() {
		ret.errors[i] = &Error{
			message: err.Error(),
			Line:    err.Line,
			Column:  err.Column,
		}
	}
	return ret
}

const maxRecursion = 1000

func (p *parser) enter() {
	p.recursion++
	if p.recursion > maxRecursion {
		panic(p.errorf(p.peek().Position, "maximum recursion depth exceeded"))
	}
}

func (p *parser) exit() {
	p.recursion--
}

func (p *parser) peek() *parserToken {
	if len(p.tokens) > 0 {
		return p.tokens[0]
	}
	return p.eof
}

// peekAt looks ahead n tokens without consuming any, where peekAt(0) is
// equivalent to peek().
func (p *parser) peekAt(n int) *parserToken {
	if n < len(p.tokens) {
		return p.tokens[n]
	}
	return p.eof
}

func (p *parser) consumeToken() {
	if len(p.tokens) > 0 {
		p.tokens = p.tokens[1:]
	}
}

func (p *parser) errorf(pos token.Position, message string, args ...interface{}) *Error {
	err := &Error{
		message: fmt.Sprintf(message, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
	p.errors = append(p.errors, err)
	return err
}

func (p *parser) isKeyword(t *parserToken, keyword string) bool {
	return t.Token == token.NAME && t.Value == keyword
}

func (p *parser) parseDocument() *ast.Document {
	p.enter()

	if p.peek() == p.eof {
		panic(p.errorf(p.eof.Position, "expected definition"))
	}

	ret := &ast.Document{}
	for p.peek() != p.eof {
		ret.Definitions = append(ret.Definitions, p.parseDefinition())
	}

	p.exit()
	return ret
}

func (p *parser) parseDefinition() ast.Definition {
	p.enter()

	var ret ast.Definition
	switch t := p.peek(); {
	case p.isKeyword(t, "fragment"):
		ret = p.parseFragmentDefinition()
	case p.isKeyword(t, "extend"):
		ret = p.parseTypeSystemExtension()
	case t.Token == token.STRING_VALUE, p.isTypeSystemDefinitionKeyword(t):
		ret = p.parseTypeSystemDefinition()
	default:
		ret = p.parseOperationDefinition()
	}

	p.exit()
	return ret
}

func (p *parser) isTypeSystemDefinitionKeyword(t *parserToken) bool {
	if t.Token != token.NAME {
		return false
	}
	switch t.Value {
	case "schema", "scalar", "type", "interface", "union", "enum", "input", "directive":
		return true
	}
	return false
}

func (p *parser) parseFragmentDefinition() *ast.FragmentDefinition {
	p.enter()

	if t := p.peek(); !p.isKeyword(t, "fragment") {
		panic(p.errorf(t.Position, `expected "fragment"`))
	}
	fragment := p.peek().Position
	p.consumeToken()

	name := p.parseName()
	if name.Name == "on" {
		panic(p.errorf(name.Position(), `fragment name must not be "on"`))
	}

	ret := &ast.FragmentDefinition{
		Fragment:      fragment,
		Name:          name,
		TypeCondition: p.parseTypeCondition(),
		Directives:    p.parseOptionalDirectives(),
		SelectionSet:  p.parseSelectionSet(),
	}

	p.exit()
	return ret
}

var operationTypes = map[string]bool{
	"query":        true,
	"mutation":     true,
	"subscription": true,
}

func (p *parser) parseOperationDefinition() *ast.OperationDefinition {
	p.enter()

	ret := &ast.OperationDefinition{}
	if ss := p.parseOptionalSelectionSet(); ss != nil {
		ret.SelectionSet = ss
	} else {
		t := p.peek()
		if t.Token != token.NAME || !operationTypes[t.Value] {
			panic(p.errorf(t.Position, "expected operation type"))
		}
		ret.OperationType = &ast.OperationType{Value: t.Value, ValuePosition: t.Position}
		p.consumeToken()

		if t := p.peek(); t.Token == token.NAME {
			ret.Name = p.parseName()
		}

		ret.VariableDefinitions = p.parseOptionalVariableDefinitions()
		ret.Directives = p.parseOptionalDirectives()
		ret.SelectionSet = p.parseSelectionSet()
	}

	p.exit()
	return ret
}

func (p *parser) parseOptionalSelectionSet() *ast.SelectionSet {
	p.enter()

	var ret *ast.SelectionSet
	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "{" {
		ret = p.parseSelectionSet()
	}

	p.exit()
	return ret
}

func (p *parser) parseSelectionSet() *ast.SelectionSet {
	p.enter()

	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "{" {
		panic(p.errorf(t.Position, "expected selection set"))
	}
	opening := p.peek().Position
	p.consumeToken()

	ret := &ast.SelectionSet{Opening: opening}
	for {
		if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "}" {
			if len(ret.Selections) == 0 {
				panic(p.errorf(t.Position, "expected selection"))
			}
			ret.Closing = t.Position
			p.consumeToken()
			break
		}
		ret.Selections = append(ret.Selections, p.parseSelection())
	}

	p.exit()
	return ret
}

func (p *parser) parseField() *ast.Field {
	p.enter()

	ret := &ast.Field{}
	ret.Name = p.parseName()
	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == ":" {
		p.consumeToken()
		ret.Alias = ret.Name
		ret.Name = p.parseName()
	}
	ret.Arguments = p.parseOptionalArguments()
	ret.Directives = p.parseOptionalDirectives()
	ret.SelectionSet = p.parseOptionalSelectionSet()

	p.exit()
	return ret
}

func (p *parser) parseTypeCondition() *ast.NamedType {
	p.enter()

	if t := p.peek(); !p.isKeyword(t, "on") {
		panic(p.errorf(t.Position, `expected "on"`))
	}
	p.consumeToken()
	ret := p.parseNamedType()

	p.exit()
	return ret
}

func (p *parser) parseSelection() ast.Selection {
	p.enter()

	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "..." {
		ret := p.parseField()
		p.exit()
		return ret
	}
	ellipsis := p.peek().Position
	p.consumeToken()

	if t := p.peek(); t.Token == token.NAME && t.Value != "on" {
		ret := &ast.FragmentSpread{
			Ellipsis:     ellipsis,
			FragmentName: p.parseName(),
			Directives:   p.parseOptionalDirectives(),
		}
		p.exit()
		return ret
	}

	ret := &ast.InlineFragment{Ellipsis: ellipsis}
	if t := p.peek(); t.Token == token.NAME {
		ret.TypeCondition = p.parseTypeCondition()
	}
	ret.Directives = p.parseOptionalDirectives()
	ret.SelectionSet = p.parseSelectionSet()

	p.exit()
	return ret
}

func (p *parser) parseOptionalArguments() []*ast.Argument {
	p.enter()

	var ret []*ast.Argument
	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "(" {
		p.consumeToken()

		for {
			if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == ")" {
				if len(ret) == 0 {
					panic(p.errorf(t.Position, "expected argument"))
				}
				p.consumeToken()
				break
			}
			ret = append(ret, p.parseArgument())
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseOptionalVariableDefinitions() []*ast.VariableDefinition {
	p.enter()

	var ret []*ast.VariableDefinition
	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "(" {
		p.consumeToken()

		for {
			if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == ")" {
				if len(ret) == 0 {
					panic(p.errorf(t.Position, "expected variable definition"))
				}
				p.consumeToken()
				break
			}
			ret = append(ret, p.parseVariableDefinition())
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseVariableDefinition() *ast.VariableDefinition {
	p.enter()

	variable := p.parseVariable()

	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != ":" {
		panic(p.errorf(t.Position, "expected colon"))
	}
	p.consumeToken()

	typ := p.parseType()

	ret := &ast.VariableDefinition{
		Variable: variable,
		Type:     typ,
	}
	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "=" {
		p.consumeToken()
		ret.DefaultValue = p.parseValue(true)
	}
	ret.Directives = p.parseOptionalDirectives()

	p.exit()
	return ret
}

func (p *parser) parseType() ast.Type {
	p.enter()

	var ret ast.Type
	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "[" {
		opening := t.Position
		p.consumeToken()
		typ := p.parseType()
		t := p.peek()
		if t.Token != token.PUNCTUATOR || t.Value != "]" {
			panic(p.errorf(t.Position, "expected ]"))
		}
		closing := t.Position
		p.consumeToken()
		ret = &ast.ListType{
			Type:    typ,
			Opening: opening,
			Closing: closing,
		}
	} else {
		ret = p.parseNamedType()
	}
	if t := p.peek(); t.Token == token.PUNCTUATOR && t.Value == "!" {
		p.consumeToken()
		ret = &ast.NonNullType{
			Type: ret,
		}
	}

	p.exit()
	return ret
}

func (p *parser) parseArgument() *ast.Argument {
	p.enter()

	ret := &ast.Argument{}
	ret.Name = p.parseName()
	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != ":" {
		panic(p.errorf(t.Position, "expected colon"))
	}
	p.consumeToken()
	ret.Value = p.parseValue(false)

	p.exit()
	return ret
}

func (p *parser) parseOptionalDirectives() []*ast.Directive {
	p.enter()

	var ret []*ast.Directive
	for {
		if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "@" {
			break
		}
		at := p.peek().Position
		p.consumeToken()
		ret = append(ret, &ast.Directive{
			At:        at,
			Name:      p.parseName(),
			Arguments: p.parseOptionalArguments(),
		})
	}

	p.exit()
	return ret
}

func (p *parser) parseNamedType() *ast.NamedType {
	p.enter()

	ret := &ast.NamedType{
		Name: p.parseName(),
	}

	p.exit()
	return ret
}

func (p *parser) parseName() *ast.Name {
	p.enter()

	ret := &ast.Name{}
	if t := p.peek(); t.Token == token.NAME {
		ret.Name = t.Value
		ret.NamePosition = t.Position
		p.consumeToken()
	} else {
		panic(p.errorf(t.Position, "expected name"))
	}

	p.exit()
	return ret
}

func (p *parser) parseVariable() *ast.Variable {
	p.enter()

	if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != "$" {
		panic(p.errorf(t.Position, "expected variable"))
	}
	dollar := p.peek().Position
	p.consumeToken()
	ret := &ast.Variable{
		Dollar: dollar,
		Name:   p.parseName(),
	}

	p.exit()
	return ret
}

func (p *parser) parseValue(constant bool) ast.Value {
	p.enter()

	var ret ast.Value

	switch t := p.peek(); t.Token {
	case token.INT_VALUE:
		p.consumeToken()
		ret = &ast.IntValue{
			Value:   t.Value,
			Literal: t.Position,
		}
	case token.FLOAT_VALUE:
		p.consumeToken()
		ret = &ast.FloatValue{
			Value:   t.Value,
			Literal: t.Position,
		}
	case token.STRING_VALUE:
		p.consumeToken()
		ret = &ast.StringValue{
			Value:   t.Value,
			Block:   t.IsBlock,
			Literal: t.Position,
		}
	case token.NAME:
		p.consumeToken()
		switch v := t.Value; v {
		case "true", "false":
			ret = &ast.BooleanValue{
				Value:   v == "true",
				Literal: t.Position,
			}
		case "null":
			ret = &ast.NullValue{
				Literal: t.Position,
			}
		default:
			ret = &ast.EnumValue{
				Value:   v,
				Literal: t.Position,
			}
		}
	case token.PUNCTUATOR:
		switch v := t.Value; v {
		case "$":
			if constant {
				panic(p.errorf(t.Position, "expected constant value"))
			}
			ret = p.parseVariable()
		case "[":
			opening := t.Position
			p.consumeToken()
			var values []ast.Value
			for {
				t := p.peek()
				if t.Token == token.PUNCTUATOR && t.Value == "]" {
					p.consumeToken()
					ret = &ast.ListValue{
						Values:  values,
						Opening: opening,
						Closing: t.Position,
					}
					break
				}
				values = append(values, p.parseValue(constant))
			}
		case "{":
			opening := t.Position
			p.consumeToken()
			var fields []*ast.ObjectField
			for {
				t := p.peek()
				if t.Token == token.PUNCTUATOR && t.Value == "}" {
					p.consumeToken()
					ret = &ast.ObjectValue{
						Fields:  fields,
						Opening: opening,
						Closing: t.Position,
					}
					break
				}
				name := p.parseName()
				if t := p.peek(); t.Token != token.PUNCTUATOR || t.Value != ":" {
					panic(p.errorf(t.Position, "expected colon"))
				}
				p.consumeToken()
				value := p.parseValue(constant)
				fields = append(fields, &ast.ObjectField{
					Name:  name,
					Value: value,
				})
			}
		}
	}

	if ret == nil {
		panic(p.errorf(p.peek().Position, "expected value"))
	}

	p.exit()
	return ret
}
