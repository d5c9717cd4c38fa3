package script

import "github.com/rivo/uniseg"

// MaxTitleGraphemes is the display budget for suggested titles. The analysis
// prompt asks the model for 15 characters or fewer; Hangul syllables count
// as one grapheme each, so byte or rune counts would overshoot.
const MaxTitleGraphemes = 15

// TitleWidth returns the number of grapheme clusters in the title.
func TitleWidth(title string) int {
	return uniseg.GraphemeClusterCount(title)
}

// TitleWithinBudget reports whether the title fits the display budget.
func TitleWithinBudget(title string) bool {
	return TitleWidth(title) <= MaxTitleGraphemes
}

// TruncateTitle clips a title to at most n grapheme clusters, appending an
// ellipsis when it had to cut.
func TruncateTitle(title string, n int) string {
	if n <= 0 || uniseg.GraphemeClusterCount(title) <= n {
		return title
	}
	g := uniseg.NewGraphemes(title)
	out := ""
	count := 0
	for g.Next() && count < n-1 {
		out += g.Str()
		count++
	}
	return out + "…"
}
