package script

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestExtractBirthYears(t *testing.T) {
	t.Run("dedupes_literals", func(t *testing.T) {
		years := ExtractBirthYears("78년생, 92년생 대박! 78년생은 특히 재물운이 터집니다")
		if got := Literals(years); !reflect.DeepEqual(got, []string{"78년생", "92년생"}) {
			t.Fatalf("unexpected tokens: %v", got)
		}
	})

	t.Run("normalizes_two_digit_years", func(t *testing.T) {
		years := ExtractBirthYears("00년생 30년생 31년생 99년생")
		want := []int{2000, 2030, 1931, 1999}
		for i, y := range years {
			if y.Year != want[i] {
				t.Errorf("%s normalized to %d, want %d", y.Literal, y.Year, want[i])
			}
		}
	})

	t.Run("four_digit_years_pass_through", func(t *testing.T) {
		years := ExtractBirthYears("1978년생과 2002년생")
		if years[0].Year != 1978 || years[1].Year != 2002 {
			t.Fatalf("unexpected normalization: %+v", years)
		}
	})

	t.Run("no_tokens", func(t *testing.T) {
		if years := ExtractBirthYears("운세 대본에 년생 토큰이 없음"); years != nil {
			t.Fatalf("expected nil, got %v", years)
		}
	})

	t.Run("all_literals_match_pattern", func(t *testing.T) {
		re := regexp.MustCompile(`^[0-9]{2,4}년생$`)
		sample := "55년생 1988년생 03년생 777년생 그리고 12년생!"
		for _, y := range ExtractBirthYears(sample) {
			if !re.MatchString(y.Literal) {
				t.Errorf("literal %q does not match token pattern", y.Literal)
			}
		}
	})
}

func TestSortChronological(t *testing.T) {
	years := ExtractBirthYears("92년생 78년생 02년생")
	SortChronological(years)
	got := Literals(years)
	// 1978 < 1992 < 2002
	want := []string{"78년생", "92년생", "02년생"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSortIsTotalOverNormalizedYears(t *testing.T) {
	years := ExtractBirthYears("30년생 31년생 00년생 99년생 1950년생")
	SortChronological(years)
	for i := 1; i < len(years); i++ {
		if years[i-1].Year > years[i].Year {
			t.Fatalf("not sorted at %d: %+v", i, years)
		}
	}
}

func TestContainsPigMotif(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"황금 복돼지가 나타났다", true},
		{"돈돼지를 두 번 누르세요", true},
		{"복 돼지 등장", true},
		{"황금 두꺼비의 해", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ContainsPigMotif(c.text); got != c.want {
			t.Errorf("ContainsPigMotif(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestTitleBudget(t *testing.T) {
	t.Run("hangul_counts_graphemes", func(t *testing.T) {
		title := "2026 황금운세"
		if TitleWidth(title) != 9 {
			t.Fatalf("unexpected width %d for %q", TitleWidth(title), title)
		}
		if !TitleWithinBudget(title) {
			t.Fatal("title should fit the budget")
		}
	})

	t.Run("truncates_long_title", func(t *testing.T) {
		long := strings.Repeat("복", 20)
		got := TruncateTitle(long, 10)
		if TitleWidth(got) != 10 {
			t.Fatalf("truncated width = %d, want 10", TitleWidth(got))
		}
		if !strings.HasSuffix(got, "…") {
			t.Fatalf("expected ellipsis suffix: %q", got)
		}
	})

	t.Run("short_title_untouched", func(t *testing.T) {
		if got := TruncateTitle("운세", 10); got != "운세" {
			t.Fatalf("short title modified: %q", got)
		}
	})
}
