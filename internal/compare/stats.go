// Package compare extracts the comparable numbers of a movie record and
// decides, stat by stat, which of two movies comes out ahead.
package compare

import (
	"math"
	"strconv"
	"strings"

	"moviecompare/internal/domain"
)

// Stat is one comparable figure of a movie
type Stat struct {
	Label   string
	Display string
	// Value is NaN when Display holds no number.
	Value float64
}

// Valid reports whether the stat carries a number
func (s Stat) Valid() bool {
	return !math.IsNaN(s.Value)
}

// Summary is a movie record with its stats, in display order
type Summary struct {
	Detail domain.MovieDetail
	Stats  []Stat
}

// Stat labels in display order
const (
	LabelAwards     = "Awards"
	LabelBoxOffice  = "Box Office"
	LabelMetascore  = "Meta Score"
	LabelIMDbRating = "IMDB Rating"
	LabelIMDbVotes  = "IMDB Votes"
)

// Summarize extracts the comparable stats of d.
func Summarize(d domain.MovieDetail) Summary {
	dollars := leadingInt(strings.NewReplacer("$", "", ",", "").Replace(d.BoxOffice))
	votes := leadingInt(strings.ReplaceAll(d.IMDbVotes, ",", ""))

	return Summary{
		Detail: d,
		Stats: []Stat{
			{Label: LabelAwards, Display: d.Awards, Value: awardCount(d.Awards)},
			{Label: LabelBoxOffice, Display: d.BoxOffice, Value: dollars},
			{Label: LabelMetascore, Display: d.Metascore, Value: leadingInt(d.Metascore)},
			{Label: LabelIMDbRating, Display: d.IMDbRating, Value: leadingFloat(d.IMDbRating)},
			{Label: LabelIMDbVotes, Display: d.IMDbVotes, Value: votes},
		},
	}
}

// awardCount sums every word of s that starts with an integer,
// so "Won 2 Oscars. 18 wins & 22 nominations." counts 42.
func awardCount(s string) float64 {
	total := 0.0
	for _, word := range strings.Split(s, " ") {
		if v := leadingInt(word); !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// leadingInt parses the optionally signed run of digits at the start of s,
// after surrounding whitespace. It returns NaN when there is none.
func leadingInt(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return math.Trunc(v)
}

// leadingFloat parses the longest decimal number at the start of s.
// It returns NaN when there is none.
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	intDigits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		intDigits++
	}
	fracDigits := 0
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
			fracDigits++
		}
		if fracDigits > 0 || intDigits > 0 {
			end = frac
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
