// Package scanner implements the GraphQL lexical grammar: it turns UTF-8
// source bytes into a stream of tokens, tracking line/column positions and
// skipping ignored tokens (BOM, whitespace, line terminators, comments,
// commas) unless asked to retain them.
package scanner

import (
	"fmt"
	"unicode/utf8"

	"github.com/nilsbr/gqlcore/token"
)

// Error represents a single lexical error.
type Error struct {
	message string
	Line    int
	Column  int
}

func (err *Error) Error() string {
	return err.message
}

// Scanner scans a single source document into tokens.
type Scanner struct {
	src    []byte
	mode   Mode
	offset int
	errors []*Error

	line   int
	column int

	nextRune     rune
	nextRuneSize int

	token            token.Token
	tokenOffset      int
	tokenLength      int
	tokenLine        int
	tokenColumn      int
	tokenStringValue string
	tokenIsBlock     bool
}

// Mode controls scanner behavior.
type Mode uint

const (
	// ScanIgnored causes ignored tokens (whitespace, commas, comments, ...)
	// to be returned by Scan instead of silently skipped.
	ScanIgnored Mode = 1 << iota
)

// New constructs a Scanner over src.
func New(src []byte, mode Mode) *Scanner {
	s := &Scanner{
		src:    src,
		mode:   mode,
		line:   1,
		column: 1,
	}
	s.readNextRune()
	return s
}

// Errors returns every lexical error encountered so far.
func (s *Scanner) Errors() []*Error {
	return s.errors
}

const maxErrors = 10

func (s *Scanner) errorf(message string, args ...interface{}) {
	s.errorfAt(s.line, s.column, message, args...)
}

func (s *Scanner) errorfAt(line, column int, message string, args ...interface{}) {
	s.errors = append(s.errors, &Error{
		message: fmt.Sprintf(message, args...),
		Line:    line,
		Column:  column,
	})
}

func (s *Scanner) readNextRune() {
	if s.isDone() {
		s.nextRune = -1
		s.nextRuneSize = 0
	} else if r, size := utf8.DecodeRune(s.src[s.offset:]); r == utf8.RuneError && size != 0 {
		s.nextRune = r
		s.nextRuneSize = 1
	} else {
		s.nextRune = r
		s.nextRuneSize = size
	}
}

func (s *Scanner) peek() rune {
	r, _ := utf8.DecodeRune(s.src[s.offset+s.nextRuneSize:])
	return r
}

func (s *Scanner) consumeRune() rune {
	r := s.nextRune
	s.offset += s.nextRuneSize
	switch {
	case r == '\n':
		s.line++
		s.column = 1
	case r == '\r' && (s.offset >= len(s.src) || s.src[s.offset] != '\n'):
		// A lone \r is one line increment. When \r is immediately followed
		// by \n, the pair counts as a single increment, attributed to the
		// \n consumed right after (by the caller in Scan's
		// LINE_TERMINATOR case), so we don't double count it here.
		s.line++
		s.column = 1
	default:
		s.column++
	}
	s.readNextRune()
	return r
}

func (s *Scanner) consumeName() bool {
	if r := s.nextRune; r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		s.consumeRune()
		for !s.isDone() {
			if r := s.nextRune; r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				s.consumeRune()
			} else {
				break
			}
		}
		return true
	}
	return false
}

func isSourceCharacter(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' || (r >= 0x20 && r <= 0xFFFF)
}

func (s *Scanner) isDone() bool {
	return len(s.errors) >= maxErrors || len(s.src) == s.offset
}

// Scan advances to the next token, returning false once the source is
// exhausted or too many lexical errors have accumulated.
func (s *Scanner) Scan() bool {
	for {
		if s.isDone() {
			return false
		}

		s.token = token.INVALID
		s.tokenOffset = s.offset
		s.tokenLine = s.line
		s.tokenColumn = s.column
		s.tokenIsBlock = false

		switch s.nextRune {
		case '\t', ' ':
			s.consumeRune()
			s.token = token.WHITE_SPACE
		case '!', '$', '&', '(', ')', ':', '=', '@', '[', ']', '{', '|', '}':
			s.consumeRune()
			s.token = token.PUNCTUATOR
		case ',':
			s.consumeRune()
			s.token = token.COMMA
		case '\r', '\n':
			if s.consumeRune() == '\r' && s.nextRune == '\n' {
				s.consumeRune()
			}
			s.token = token.LINE_TERMINATOR
		case '#':
			for s.nextRune != '\r' && s.nextRune != '\n' && !s.isDone() {
				s.consumeRune()
			}
			s.token = token.COMMENT
		case '.':
			s.consumeRune()
			if s.nextRune == '.' && s.peek() == '.' {
				s.consumeRune()
				s.consumeRune()
				s.token = token.PUNCTUATOR
			} else if s.nextRune == '.' {
				s.consumeRune()
				s.errorf("illegal character")
			} else {
				s.errorf("illegal character")
			}
		case '"':
			s.tokenStringValue, s.tokenIsBlock = s.consumeStringValue()
			s.token = token.STRING_VALUE
		case utf8.RuneError:
			s.errorf("invalid utf-8 character")
			s.consumeRune()
		case 0xfeff:
			if s.offset == 0 {
				s.token = token.UNICODE_BOM
			} else {
				s.errorf("illegal byte order mark")
			}
			s.consumeRune()
		default:
			if s.consumeIntegerPart() {
				if s.consumeFractionalPart() {
					s.consumeExponentPart()
					s.token = token.FLOAT_VALUE
				} else if s.consumeExponentPart() {
					s.token = token.FLOAT_VALUE
				} else {
					s.token = token.INT_VALUE
				}
			} else if s.consumeName() {
				s.token = token.NAME
			} else {
				s.errorf("illegal character %#U", s.nextRune)
				s.consumeRune()
			}
		}

		if s.token == token.INVALID || (s.token.IsIgnored() && (s.mode&ScanIgnored) == 0) {
			continue
		}

		s.tokenLength = s.offset - s.tokenOffset
		return true
	}
}

// Token returns the kind of the current token.
func (s *Scanner) Token() token.Token {
	return s.token
}

// Literal returns the raw source text of the current token.
func (s *Scanner) Literal() string {
	return string(s.src[s.tokenOffset : s.tokenOffset+s.tokenLength])
}

// StringValue returns the unescaped value of the current string token.
func (s *Scanner) StringValue() string {
	if s.token == token.STRING_VALUE {
		return s.tokenStringValue
	}
	return s.Literal()
}

// IsBlockString reports whether the current string token was written with
// triple-quote block string syntax.
func (s *Scanner) IsBlockString() bool {
	return s.tokenIsBlock
}

// Position returns the position of the first character of the current
// token.
func (s *Scanner) Position() token.Position {
	return token.Position{Line: s.tokenLine, Column: s.tokenColumn}
}

// Line returns the line of the first character of the current token.
func (s *Scanner) Line() int {
	return s.tokenLine
}

// Column returns the column of the first character of the current token.
func (s *Scanner) Column() int {
	return s.tokenColumn
}

// EndPosition returns the position immediately following the last character
// scanned so far. Once Scan has returned false, this is the position
// callers should attribute to an unexpected end of input.
func (s *Scanner) EndPosition() token.Position {
	return token.Position{Line: s.line, Column: s.column}
}
