package schema

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgload/pkg/pgload"
)

const digitPrefix = "col_"

var (
	nonWordRun    = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	underscoreRun = regexp.MustCompile(`_{2,}`)
)

// Sanitize converts an arbitrary label into a lowercase identifier made of
// letters, digits and single underscores. Labels that start with a digit are
// prefixed with "col_"; labels with nothing usable become "unnamed_column".
//
// Sanitize(Sanitize(x)) == Sanitize(x) for every x.
func Sanitize(label string) string {
	s := strings.ToLower(label)
	s = nonWordRun.ReplaceAllString(s, "_")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if s == "" {
		return pgload.UnnamedColumn
	}

	if r, _ := utf8.DecodeRuneInString(s); unicode.IsNumber(r) {
		s = digitPrefix + s
	}

	return s
}

// SanitizeTableName derives a table name from a file's stem (its base name
// without extension).
func SanitizeTableName(stem string) string {
	return Sanitize(stem)
}

// QuoteIdentifier renders an identifier for use in SQL text.
func QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
