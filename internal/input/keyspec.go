package input

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Keyspec is a key sequence specification as found in the config, e.g. "gg",
// "<c-c>" or "<space>f". A literal '<' is written "<lt>".
type Keyspec string

// ParseKeyspec converts a keyspec to the key sequence it describes.
func ParseKeyspec(spec Keyspec) ([]Key, error) {
	s := string(spec)
	if s == "" {
		return nil, fmt.Errorf("empty keyspec")
	}

	keys := []Key{}
	for pos := 0; pos < len(s); {
		switch s[pos] {
		case '>':
			return nil, fmt.Errorf("unexpected '>' at %d in '%s'", pos, s)
		case '<':
			end := strings.IndexByte(s[pos:], '>')
			if end < 0 {
				return nil, fmt.Errorf("unclosed '<' at %d in '%s'", pos, s)
			}
			name := s[pos+1 : pos+end]
			if strings.ContainsRune(name, '<') {
				return nil, fmt.Errorf("nested '<' in '%s'", s)
			}
			key, ok := namedKey(strings.ToLower(name))
			if !ok {
				return nil, fmt.Errorf("unknown key '<%s>' in '%s'", name, s)
			}
			keys = append(keys, key)
			pos += end + 1
		default:
			r, size := utf8.DecodeRuneInString(s[pos:])
			keys = append(keys, Rune(r))
			pos += size
		}
	}
	return keys, nil
}

// FormatKeys returns the keyspec notation of a key sequence.
func FormatKeys(keys []Key) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k.String())
	}
	return b.String()
}
