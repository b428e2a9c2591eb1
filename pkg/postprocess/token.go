package postprocess

import "fmt"

// tokenKind classifies one lexical unit of the generated markup.
type tokenKind int

const (
	tokText tokenKind = iota
	tokOpen
	tokClose
	tokSelfClose
	tokDecl // processing instructions, doctypes and comments
)

// token is one lexical unit. Concatenating token texts in order
// reproduces the tokenizer input byte for byte.
type token struct {
	kind tokenKind
	text string
	name string // tag name, empty for tokText and tokDecl
}

// tokenize splits generated markup into tags and text runs. Quoted
// attribute values may contain '>' so tags are scanned quote-aware.
func tokenize(input []byte) ([]token, error) {
	var tokens []token

	i := 0
	for i < len(input) {
		if input[i] != '<' {
			start := i
			for i < len(input) && input[i] != '<' {
				i++
			}
			tokens = append(tokens, token{kind: tokText, text: string(input[start:i])})
			continue
		}

		tok, next, err := scanTag(input, i)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		i = next
	}
	return tokens, nil
}

// scanTag reads one tag starting at the '<' at offset start and returns
// the token and the offset just past its '>'.
func scanTag(input []byte, start int) (token, int, error) {
	if start+1 < len(input) && (input[start+1] == '!' || input[start+1] == '?') {
		return scanDecl(input, start)
	}

	i := start + 1
	closing := false
	if i < len(input) && input[i] == '/' {
		closing = true
		i++
	}

	nameStart := i
	for i < len(input) && isTagNameChar(input[i]) {
		i++
	}
	name := string(input[nameStart:i])
	if name == "" {
		return token{}, 0, fmt.Errorf("%w: bare '<' at offset %d", ErrMalformed, start)
	}

	var quote byte
	for i < len(input) {
		b := input[i]
		switch {
		case quote != 0:
			if b == quote {
				quote = 0
			}
		case b == '"' || b == '\'':
			quote = b
		case b == '>':
			text := string(input[start : i+1])
			kind := tokOpen
			if closing {
				kind = tokClose
			} else if input[i-1] == '/' {
				kind = tokSelfClose
			}
			return token{kind: kind, text: text, name: name}, i + 1, nil
		}
		i++
	}
	return token{}, 0, fmt.Errorf("%w: unterminated tag at offset %d", ErrMalformed, start)
}

// scanDecl reads a <!...> or <?...?> construct. Comments terminate only
// on "-->" so embedded '>' is preserved.
func scanDecl(input []byte, start int) (token, int, error) {
	end := ">"
	if hasPrefixAt(input, start, "<!--") {
		end = "-->"
	}

	for i := start + 1; i < len(input); i++ {
		if input[i] == '>' && hasPrefixAt(input, i-len(end)+1, end) {
			return token{kind: tokDecl, text: string(input[start : i+1])}, i + 1, nil
		}
	}
	return token{}, 0, fmt.Errorf("%w: unterminated declaration at offset %d", ErrMalformed, start)
}

func hasPrefixAt(input []byte, offset int, prefix string) bool {
	if offset < 0 || offset+len(prefix) > len(input) {
		return false
	}
	return string(input[offset:offset+len(prefix)]) == prefix
}

func isTagNameChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == ':' || b == '-' || b == '_' || b == '.':
		return true
	default:
		return false
	}
}
