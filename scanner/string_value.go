package scanner

import "strings"

func hexRuneValue(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return 10 + r - 'a'
	case r >= 'A' && r <= 'F':
		return 10 + r - 'A'
	}
	return -1
}

// blockStringValue applies the GraphQL spec's block string value algorithm:
// normalize line endings, strip the common leading indentation from every
// line but the first, then drop leading/trailing blank lines.
func blockStringValue(rawValue string) string {
	rawValue = strings.ReplaceAll(rawValue, "\r\n", "\n")
	rawValue = strings.ReplaceAll(rawValue, "\r", "\n")
	lines := strings.Split(rawValue, "\n")

	commonIndent := -1
	for _, line := range lines[1:] {
		indent := 0
		for _, r := range line {
			if r != ' ' && r != '\t' {
				break
			}
			indent++
		}
		if indent < len(line) && (commonIndent == -1 || indent < commonIndent) {
			commonIndent = indent
		}
	}

	if commonIndent > 0 {
		for i, line := range lines {
			if i > 0 && len(line) >= commonIndent {
				lines[i] = line[commonIndent:]
			} else if i > 0 {
				lines[i] = ""
			}
		}
	}

	isBlank := func(line string) bool {
		return strings.IndexFunc(line, func(r rune) bool { return r != ' ' && r != '\t' }) == -1
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

// consumeStringValue consumes either a regular or block (triple-quoted)
// string, returning its unescaped value and whether it was a block string.
func (s *Scanner) consumeStringValue() (string, bool) {
	s.consumeRune() // opening '"'

	isBlock := false
	if s.nextRune == '"' && s.peek() == '"' {
		s.consumeRune()
		s.consumeRune()
		isBlock = true
	}

	var value strings.Builder

	terminated := false
	isEscaped := false
	for !terminated && !s.isDone() {
		if isEscaped {
			if isBlock {
				if r := s.consumeRune(); r == '"' && s.nextRune == '"' && s.peek() == '"' {
					s.consumeRune()
					s.consumeRune()
					value.WriteString(`"""`)
				} else {
					value.WriteByte('\\')
					value.WriteRune(r)
				}
			} else {
				escLine, escColumn := s.line, s.column
				switch r := s.consumeRune(); r {
				case '"', '\\', '/':
					value.WriteRune(r)
				case 'b':
					value.WriteByte('\b')
				case 'f':
					value.WriteByte('\f')
				case 'n':
					value.WriteByte('\n')
				case 'r':
					value.WriteByte('\r')
				case 't':
					value.WriteByte('\t')
				case 'u':
					var code rune
					ok := true
					for i := 0; i < 4; i++ {
						if v := hexRuneValue(s.nextRune); v < 0 {
							s.errorf("invalid unicode escape sequence")
							ok = false
							break
						} else {
							code = (code << 4) | v
							s.consumeRune()
						}
					}
					if ok {
						value.WriteRune(code)
					}
				default:
					s.errorfAt(escLine, escColumn, "invalid escape sequence")
				}
			}
			isEscaped = false
			continue
		}

		switch {
		case s.nextRune == '\n' || s.nextRune == '\r':
			if !isBlock {
				s.errorf("unterminated string")
				return value.String(), isBlock
			}
			value.WriteRune('\n')
			if s.consumeRune() == '\r' && s.nextRune == '\n' {
				s.consumeRune()
			}
		case s.nextRune == '\\':
			s.consumeRune()
			isEscaped = true
		case s.nextRune == '"':
			s.consumeRune()
			if isBlock {
				if s.nextRune == '"' && s.peek() == '"' {
					s.consumeRune()
					s.consumeRune()
					terminated = true
				} else {
					value.WriteByte('"')
				}
			} else {
				terminated = true
			}
		case !isSourceCharacter(s.nextRune):
			s.errorf("invalid character %#U in string", s.nextRune)
			s.consumeRune()
		default:
			value.WriteRune(s.nextRune)
			s.consumeRune()
		}
	}

	if !terminated {
		s.errorf("unterminated string")
	}

	result := value.String()
	if isBlock {
		result = blockStringValue(result)
	}
	return result, isBlock
}
