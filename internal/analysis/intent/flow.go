package intent

import (
	"strings"

	"github.com/moosemarche/moosebot/backend/internal/model/chat"
)

// FlowState is the conversational mode implied by the previous bot message.
// Both flags can be set at once when a reply echoes user text next to a
// marker of the other flow.
type FlowState struct {
	Vendor   bool `json:"vendor"`
	Consumer bool `json:"consumer"`
}

// String names the state for logs and API views.
func (f FlowState) String() string {
	switch {
	case f.Vendor && f.Consumer:
		return "vendor+consumer"
	case f.Vendor:
		return "vendor"
	case f.Consumer:
		return "consumer"
	default:
		return "none"
	}
}

// flowMarkers lists phrases that only appear in specific bot replies, keyed by
// the flow those replies open.
var flowMarkers = struct {
	vendor   []string
	consumer []string
}{
	vendor:   []string{"campaign simulation", "strategy benefit"},
	consumer: []string{"found these local vendors", "verified vendor", "active categories"},
}

// DetectFlow derives the flow from the latest assistant message in history.
// It also returns that message lowercased, or "" when the bot has not spoken.
func DetectFlow(history []chat.Message) (FlowState, string) {
	lastBot := ""
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == chat.RoleAssistant {
			lastBot = strings.ToLower(history[i].Content)
			break
		}
	}
	return flowOf(lastBot), lastBot
}

func flowOf(lastBot string) FlowState {
	return FlowState{
		Vendor:   containsAny(lastBot, flowMarkers.vendor),
		Consumer: containsAny(lastBot, flowMarkers.consumer),
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
