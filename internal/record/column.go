package record

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nonWord   = regexp.MustCompile(`[^\p{L}\p{M}\p{N}\p{Pc}]`)
	underRuns = regexp.MustCompile(`_{2,}`)
)

// SanitizeColumnName turns header text into a column name. position is the
// 1-based column index used for blank headers.
func SanitizeColumnName(header string, position int) string {
	name := strings.TrimSpace(header)
	if name == "" {
		return PlaceholderColumn(position)
	}

	name = nonWord.ReplaceAllString(name, "_")
	if r, _ := utf8.DecodeRuneInString(name); r != '_' && !unicode.IsLetter(r) {
		name = "_" + name
	}
	return underRuns.ReplaceAllString(name, "_")
}

func PlaceholderColumn(position int) string {
	return "Column" + strconv.Itoa(position)
}

// PlaceholderColumns returns Column1..ColumnN.
func PlaceholderColumns(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = PlaceholderColumn(i + 1)
	}
	return names
}

// SanitizeHeader sanitizes a whole header row and makes the names unique by
// suffixing repeats with _2, _3 and so on. Comparison is case-insensitive
// since most databases fold identifier case.
func SanitizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		base := SanitizeColumnName(h, i+1)
		name := base
		for n := 2; seen[strings.ToLower(name)]; n++ {
			name = strings.TrimRight(base, "_") + "_" + strconv.Itoa(n)
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}
