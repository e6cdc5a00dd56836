package voice

import (
	"strings"

	"github.com/lethub/voice-gateway/internal/domain"
)

// RouteIntent classifies a transcript by substring matching. Weather wins
// over the CRM function call, which wins over general chat. The matching is
// deliberately coarse: "in " is looked up anywhere in the string, not just
// before a location.
func RouteIntent(transcript, fallbackCity string) domain.Intent {
	lower := strings.ToLower(transcript)

	if strings.Contains(lower, "weather") || strings.Contains(lower, "temperature") {
		return domain.Intent{
			Kind:     domain.IntentWeatherQuery,
			Location: extractLocation(transcript, lower, fallbackCity),
		}
	}

	if strings.Contains(lower, "update crm") {
		return domain.Intent{
			Kind:       domain.IntentFunctionCall,
			Function:   "update_crm",
			Parameters: map[string]interface{}{"lead_id": "1234"},
		}
	}

	return domain.Intent{Kind: domain.IntentGeneralChat}
}

// extractLocation takes everything after the first "in " of the transcript,
// preserving the original casing. Without that marker the fallback city is
// used.
func extractLocation(transcript, lower, fallbackCity string) string {
	idx := strings.Index(lower, "in ")
	if idx < 0 {
		return fallbackCity
	}

	loc := strings.TrimSpace(transcript[idx+len("in "):])
	loc = strings.TrimRight(loc, ".,!?")
	if loc == "" {
		return fallbackCity
	}
	return loc
}
