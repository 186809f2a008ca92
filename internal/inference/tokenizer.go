package inference

// ParsedParam is a single parameter token extracted from a path pattern.
type ParsedParam struct {
	Name       string
	Repeatable bool
}

// ExtractParams scans a path pattern left to right and returns its parameter
// tokens in encounter order.
//
// Token grammar:
//
//	':' name [ '(' matcher ')' ] [ '+' | '*' ]
//
// name is one or more word characters (letters, digits, underscore). The
// matcher expression is skipped entirely and never influences typing. Both
// '+' and '*' mark the parameter repeatable. A ':' not followed by at least
// one word character is not a token. Scanning always advances past consumed
// text, so tokens never overlap.
func ExtractParams(pattern string) []ParsedParam {
	var params []ParsedParam
	i := 0
	for i < len(pattern) {
		if pattern[i] != ':' {
			i++
			continue
		}
		j := i + 1
		for j < len(pattern) && isWordChar(pattern[j]) {
			j++
		}
		if j == i+1 {
			// Bare delimiter, e.g. a trailing ':'. Not a parameter.
			i = j
			continue
		}
		name := pattern[i+1 : j]

		// Optional custom matcher. An unterminated '(' is not part of the
		// token; the token ends at the name and scanning resumes at the '('.
		if j < len(pattern) && pattern[j] == '(' {
			k := j + 1
			for k < len(pattern) && pattern[k] != ')' {
				k++
			}
			if k < len(pattern) {
				j = k + 1
			}
		}

		repeatable := false
		if j < len(pattern) && (pattern[j] == '+' || pattern[j] == '*') {
			repeatable = true
			j++
		}

		params = append(params, ParsedParam{Name: name, Repeatable: repeatable})
		i = j
	}
	return params
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_'
}
