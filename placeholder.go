package sqlwrap

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholder selects the positional parameter style a driver understands.
//
//   - PlaceholderQuestion   → "?"           (SQLite, MySQL, DuckDB)
//   - PlaceholderDollar     → "$1, $2, …"  (PostgreSQL: lib/pq, pgx)
//   - PlaceholderAtP        → "@p1, @p2…"  (SQL Server)
//   - PlaceholderColonNum   → ":1, :2, …"  (Oracle)
type Placeholder int

const (
	PlaceholderQuestion Placeholder = iota
	PlaceholderDollar
	PlaceholderAtP
	PlaceholderColonNum
)

// PlaceholderFor picks a Placeholder from a driver name.
//
//	ph := sqlwrap.PlaceholderFor("pgx")    // => PlaceholderDollar
//	ph := sqlwrap.PlaceholderFor("sqlite") // => PlaceholderQuestion
func PlaceholderFor(driverName string) Placeholder {
	switch strings.ToLower(driverName) {
	case "pgx", "postgres", "postgresql", "lib/pq", "pg":
		return PlaceholderDollar
	case "sqlserver", "mssql":
		return PlaceholderAtP
	case "godror", "oracle", "goracle":
		return PlaceholderColonNum
	default:
		return PlaceholderQuestion
	}
}

// rewritePlaceholders numbers every '?' marker outside quoted strings,
// quoted identifiers, comments and dollar-quoted blocks. Unterminated
// sections are copied through as-is and left for the driver to reject.
func rewritePlaceholders(query string, ph Placeholder) string {
	if ph == PlaceholderQuestion {
		return query
	}
	out := make([]byte, 0, len(query)+16)
	i, arg := 0, 1

	for i < len(query) {
		r, w := utf8.DecodeRuneInString(query[i:])
		if j, ok := skipQuoted(query, i, r, w); ok {
			out = append(out, query[i:j]...)
			i = j
			continue
		}
		if r == '?' {
			switch ph {
			case PlaceholderDollar:
				out = append(out, '$')
			case PlaceholderAtP:
				out = append(out, '@', 'p')
			case PlaceholderColonNum:
				out = append(out, ':')
			}
			out = strconv.AppendInt(out, int64(arg), 10)
			arg++
			i += w
			continue
		}
		out = append(out, query[i:i+w]...)
		i += w
	}
	return string(out)
}

// skipQuoted reports the end of a quoted or commented section starting at i,
// or false when query[i] does not open one.
func skipQuoted(query string, i int, r rune, w int) (int, bool) {
	switch r {
	case '\'', '"', '`':
		return skipDelimited(query, i+w, byte(r)), true
	case '-':
		if strings.HasPrefix(query[i:], "--") {
			return skipLineComment(query, i+2), true
		}
	case '/':
		if strings.HasPrefix(query[i:], "/*") {
			return skipBlockComment(query, i+2), true
		}
	case '$':
		return skipDollarQuoted(query, i)
	}
	return 0, false
}

// skipDelimited skips to just past the closing delim; a doubled delimiter is
// an escape.
func skipDelimited(s string, i int, delim byte) int {
	for i < len(s) {
		c := s[i]
		i++
		if c == delim {
			if i < len(s) && s[i] == delim {
				i++
				continue
			}
			return i
		}
	}
	return len(s)
}

func skipLineComment(s string, i int) int {
	if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(s)
}

func skipBlockComment(s string, i int) int {
	if j := strings.Index(s[i:], "*/"); j >= 0 {
		return i + j + 2
	}
	return len(s)
}

// skipDollarQuoted handles $$...$$ and $tag$...$tag$ (PostgreSQL).
func skipDollarQuoted(s string, i int) (int, bool) {
	j := i + 1
	for j < len(s) && isTagChar(rune(s[j])) {
		j++
	}
	if j >= len(s) || s[j] != '$' {
		return 0, false
	}
	tag := s[i : j+1]
	k := j + 1
	idx := strings.Index(s[k:], tag)
	if idx < 0 {
		return len(s), true
	}
	return k + idx + len(tag), true
}

func isTagChar(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
