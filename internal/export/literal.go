package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
)

// Escape doubles single quotes and spells out ampersands, which SQL*Plus
// would otherwise read as substitution variables.
func Escape(s string) string {
	escaped := strings.ReplaceAll(s, "'", "''")
	return strings.ReplaceAll(escaped, "&", "and")
}

// EscapeMySQL also doubles backslashes, which MySQL treats as escape
// characters inside string literals by default.
func EscapeMySQL(s string) string {
	return Escape(strings.ReplaceAll(s, `\`, `\\`))
}

// Literal formats a value for direct inclusion in SQL text.
func Literal(val any) string {
	return literal(val, Escape)
}

func literal(val any, escape func(string) string) string {
	if val == nil {
		return "NULL"
	}
	switch v := val.(type) {
	case string:
		return "'" + escape(v) + "'"
	case seeder.Money:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return "'" + escape(fmt.Sprintf("%v", v)) + "'"
	}
}

// Inline substitutes ? placeholders outside quoted text with literal args.
func Inline(query string, args []any) (string, error) {
	return inline(query, args, Escape)
}

func inline(query string, args []any, escape func(string) string) (string, error) {
	var b strings.Builder
	b.Grow(len(query) + 16*len(args))

	next := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			if next >= len(args) {
				return "", fmt.Errorf("query has more placeholders than %d args", len(args))
			}
			b.WriteString(literal(args[next], escape))
			next++
		default:
			b.WriteByte(c)
		}
	}

	if next != len(args) {
		return "", fmt.Errorf("query used %d of %d args", next, len(args))
	}
	return b.String(), nil
}
