package intent

import "strings"

const (
	HintCampaign = "🔄 Simulating Campaign ROI..."
	HintSearch   = "🔍 Querying Vendor Database..."
	HintDefault  = "Processing..."
)

// StatusHint is the progress text a host shows while a prompt is handled.
func StatusHint(prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "view") || strings.Contains(p, "cost"):
		return HintCampaign
	case strings.Contains(p, "find") || strings.Contains(p, "search"):
		return HintSearch
	default:
		return HintDefault
	}
}
