// Builds the document tree consumed by the renderer: markup fragments
// are scanned into tagged nodes with attribute maps, stored in an arena
// with parent back references for attribute inheritance.
//
// Parsing is deliberately lenient: a closing fragment whose tag does not
// match the open element is ignored (the cursor does not move), and
// unterminated attribute values are kept. Malformed documents degrade
// instead of failing; structural problems surface through Validate.
package svgdom

import "strings"

// SplitFragments extracts the "<...>" fragments of a raw markup document,
// dropping comments. Text between fragments is discarded.
func SplitFragments(data string) []string {
	var out []string
	for i := 0; i < len(data); {
		start := strings.IndexByte(data[i:], '<')
		if start == -1 {
			break
		}
		start += i
		if strings.HasPrefix(data[start:], "<!--") {
			end := strings.Index(data[start+4:], "-->")
			if end == -1 {
				break
			}
			i = start + 4 + end + 3
			continue
		}
		end := strings.IndexByte(data[start:], '>')
		if end == -1 {
			break
		}
		out = append(out, data[start:start+end+1])
		i = start + end + 1
	}
	return out
}

// IsSelfClosing reports whether the fragment terminates its own element.
func IsSelfClosing(fragment string) bool {
	return strings.HasSuffix(strings.TrimRight(fragment, " \t\r\n"), "/>")
}

// IsClosing reports whether the fragment closes an element.
func IsClosing(fragment string) bool {
	return strings.HasPrefix(strings.TrimSpace(fragment), "</")
}

// TagOf returns the tag name of a fragment: the first word after the
// bracket and any '/', '!' or '?' markers. Returns "" when there is none.
func TagOf(fragment string) string {
	content := strings.TrimSpace(fragment)
	content = strings.TrimPrefix(content, "<")
	content = strings.TrimSuffix(content, ">")
	content = strings.TrimSuffix(content, "/")

	i := 0
	for i < len(content) {
		c := content[i]
		if c == '/' || c == '!' || c == '?' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}
		break
	}
	start := i
	for i < len(content) && isTagByte(content[i]) {
		i++
	}
	return content[start:i]
}

func isTagByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

// attribute scanner states
const (
	scanKey     = iota // accumulating a key, until '='
	scanQuote          // waiting for the opening quote
	scanValue          // accumulating the quoted value
	scanEscaped        // backslash seen: take the next char literally
)

// ParseAttributes tokenizes the key="value" pairs of an opening fragment.
// Both single and double quotes delimit values; a backslash inside a value
// escapes the next character. A trailing unterminated value is kept.
func ParseAttributes(fragment string) map[string]string {
	attrs := make(map[string]string)
	content := strings.TrimSpace(fragment)
	if strings.HasPrefix(content, "</") {
		return attrs
	}
	content = strings.TrimPrefix(content, "<")
	content = strings.TrimSuffix(content, ">")
	if strings.HasSuffix(content, "/") {
		content = strings.TrimRight(strings.TrimSuffix(content, "/"), " \t\r\n")
	}

	// drop the tag word
	content = strings.TrimLeft(content, " \t\r\n")
	cut := strings.IndexAny(content, " \t\r\n")
	if cut == -1 {
		return attrs
	}
	rest := strings.TrimLeft(content[cut:], " \t\r\n")

	state := scanKey
	var acc strings.Builder
	key := ""
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch state {
		case scanKey:
			if c == '=' {
				key = strings.TrimSpace(acc.String())
				acc.Reset()
				state = scanQuote
			} else if c != ' ' {
				acc.WriteByte(c)
			}
		case scanQuote:
			if c == '"' || c == '\'' {
				state = scanValue
			}
		case scanValue:
			switch c {
			case '\\':
				state = scanEscaped
			case '"', '\'':
				attrs[key] = acc.String()
				acc.Reset()
				key = ""
				state = scanKey
			default:
				acc.WriteByte(c)
			}
		case scanEscaped:
			acc.WriteByte(c)
			state = scanValue
		}
	}
	if key != "" && attrs[key] == "" && acc.Len() > 0 {
		attrs[key] = acc.String()
	}
	return attrs
}
