package intent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractViews(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"30k views", 30000},
		{"1 million impressions", 1000000},
		{"1.5 million impressions", 1500000},
		{"2.5m", 2500000},
		{"Can I get 2.5K views?", 2500},
		{"no numbers here", 1000},
		{"", 1000},
		{"50 000 views", 50000},
		{"$1,500 budget", 1500},
		{"quote for 30000 views", 30000},
		{"between 12 and 400 views", 400},
		{"30 k views", 30},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, ExtractViews(tc.in))
		})
	}
}

func TestExtractViews_NeverNegative(t *testing.T) {
	require.Equal(t, 5, ExtractViews("-5 views"))
	require.Equal(t, 99999999999999, ExtractViews("99999999999999"))
}

func TestStripPunctuationKeepsDecimalPoints(t *testing.T) {
	require.Equal(t, "2.5m views", stripPunctuation("2.5m views!", true))
	require.Equal(t, "25m views", stripPunctuation("2.5m views!", false))
	require.Equal(t, "end 3", stripPunctuation("end. 3", true))
}
