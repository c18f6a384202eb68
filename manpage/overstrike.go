package manpage

import "strings"

// RemoveOverstrike removes the backspace sequences man uses for emphasis on
// terminals: 'x\bx' (bold) and '_\bx' (underline) both become 'x'.
func RemoveOverstrike(s string) string {
	if !strings.ContainsRune(s, '\b') {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\b' {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
