package parse

import (
	"tlog.app/go/errors"
)

// token reads the next token starting at st. A nil token with i == len(b)
// means end of input.
func (s *state) token(st int) (t token, i int, err error) {
	st = s.skipSpaces(st)
	i = st

	if i == len(s.b) {
		return nil, i, nil
	}

	switch c := s.b[i]; {
	case c == '(' || c == ')' || c == '{' || c == '}' ||
		c == ':' || c == ',' || c == '=' || c == '-':
		return punct(s.b[i : i+1]), i + 1, nil
	case c == '/':
		if i+1 < len(s.b) && s.b[i+1] == '/' {
			i = s.skipLine(i)

			return comment(s.b[st:i]), i, nil
		}

		return nil, i, errors.New("unsupported token: %q", c)
	case c >= '0' && c <= '9':
		for i < len(s.b) && s.b[i] >= '0' && s.b[i] <= '9' {
			i++
		}

		return number(s.b[st:i]), i, nil
	case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_':
		i = s.skipIdent(i + 1)

		return ident(s.b[st:i]), i, nil
	default:
		return nil, i, errors.New("unsupported token: %q", c)
	}
}

func (s *state) skipSpaces(i int) int {
	for i < len(s.b) {
		switch s.b[i] {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		}

		break
	}

	return i
}

func (s *state) skipIdent(i int) int {
	for i < len(s.b) && (s.b[i] == '_' ||
		s.b[i] >= 'A' && s.b[i] <= 'Z' ||
		s.b[i] >= 'a' && s.b[i] <= 'z' ||
		s.b[i] >= '0' && s.b[i] <= '9') {
		i++
	}

	return i
}

func (s *state) skipLine(i int) int {
	for i < len(s.b) && s.b[i] != '\n' {
		i++
	}

	return i
}
