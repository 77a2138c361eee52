package helpers

import "strings"

// EscapeLike escapes LIKE/ILIKE wildcard characters in user-supplied
// search text so the pattern matches them literally. The query must pair
// this with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
