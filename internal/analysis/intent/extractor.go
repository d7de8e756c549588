package intent

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultViews is returned when no count can be found in the text.
const DefaultViews = 1000

var (
	spacedDigits  = regexp.MustCompile(`(\d+)\s+(\d+)`)
	firstNumber   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	thousandsUnit = regexp.MustCompile(`(\d+(?:\.\d+)?)k`)
	millionsUnit  = regexp.MustCompile(`(\d+(?:\.\d+)?)m`)
	digitRun      = regexp.MustCompile(`\d+`)
)

// ExtractViews parses an impression count out of free text. It never fails:
// text without a usable number yields DefaultViews.
func ExtractViews(text string) int {
	clean := spacedDigits.ReplaceAllString(stripPunctuation(strings.ToLower(text), true), "${1}${2}")

	if strings.Contains(clean, "million") {
		if m := firstNumber.FindString(clean); m != "" {
			return scale(m, 1_000_000)
		}
	}
	if m := thousandsUnit.FindStringSubmatch(clean); m != nil {
		return scale(m[1], 1_000)
	}
	if m := millionsUnit.FindStringSubmatch(clean); m != nil {
		return scale(m[1], 1_000_000)
	}

	best, found := 0, false
	for _, run := range digitRun.FindAllString(clean, -1) {
		n, err := strconv.Atoi(run)
		if err != nil {
			n = math.MaxInt
		}
		if !found || n > best {
			best, found = n, true
		}
	}
	if found {
		return best
	}
	return DefaultViews
}

func scale(number string, multiplier float64) int {
	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return DefaultViews
	}
	v := math.Round(f * multiplier)
	if v >= math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

// stripPunctuation removes ASCII punctuation. With keepDecimals a '.' between
// two digits is kept so "2.5k" still reads as two and a half thousand.
func stripPunctuation(s string, keepDecimals bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isPunct(c) {
			b.WriteByte(c)
			continue
		}
		if keepDecimals && c == '.' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// normalize lowercases and strips punctuation the way every keyword test expects.
func normalize(s string) string {
	return stripPunctuation(strings.ToLower(s), false)
}
