// Package script derives display data from a generated fortune script:
// the "NN년생" (birth year) tokens the viewer renders, and the grapheme
// budget applied to suggested titles.
package script

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var birthYearPattern = regexp.MustCompile(`(\d{2,4})년생`)

// BirthYear is one "NN년생" token extracted from a fortune script.
type BirthYear struct {
	// Literal is the token exactly as it appears, e.g. "78년생".
	Literal string
	// Year is the normalized 4-digit year, e.g. 1978.
	Year int
}

// NormalizeYear maps a 2-digit year into its century: 00-30 are 2000s,
// 31-99 are 1900s. 3- and 4-digit years pass through unchanged.
func NormalizeYear(y int) int {
	if y >= 100 {
		return y
	}
	if y <= 30 {
		return 2000 + y
	}
	return 1900 + y
}

// ExtractBirthYears returns the unique birth-year tokens found in text, in
// order of first appearance. Duplicate literals are dropped; "78년생" and
// "1978년생" are distinct literals even though they normalize identically.
func ExtractBirthYears(text string) []BirthYear {
	matches := birthYearPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	years := make([]BirthYear, 0, len(matches))
	for _, m := range matches {
		literal := m[0]
		if seen[literal] {
			continue
		}
		seen[literal] = true
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		years = append(years, BirthYear{Literal: literal, Year: NormalizeYear(n)})
	}
	return years
}

// SortChronological orders tokens by normalized year ascending (oldest
// first), keeping the relative appearance order for equal years.
func SortChronological(years []BirthYear) {
	sort.SliceStable(years, func(i, j int) bool {
		return years[i].Year < years[j].Year
	})
}

// Literals returns just the literal token strings.
func Literals(years []BirthYear) []string {
	out := make([]string, len(years))
	for i, y := range years {
		out[i] = y.Literal
	}
	return out
}

// ContainsPigMotif reports whether the script mentions the fortune pig.
// Whitespace is stripped first so "복 돼지" still matches.
func ContainsPigMotif(text string) bool {
	clean := strings.Join(strings.Fields(text), "")
	for _, kw := range []string{"복돼지", "돈돼지", "돼지"} {
		if strings.Contains(clean, kw) {
			return true
		}
	}
	return false
}
