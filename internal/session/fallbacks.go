package session

import (
	"fmt"
	"strings"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
)

// repetitionSignals are phrases in a user message that indicate the assistant
// asked something already answered.
var repetitionSignals = []string{"already answered", "just told you", "i said"}

func signalsRepetition(text string) bool {
	lower := strings.ToLower(text)
	for _, s := range repetitionSignals {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// fallbackReply selects the deterministic substitute response used when the
// completion service fails mid-conversation. The reply is keyed on the number
// of user messages so far, so repeated provider failures still walk the topic
// forward instead of looping on one canned line.
func fallbackReply(phase domain.Phase, topicID string, village domain.VillageInfo, log []domain.Message) string {
	if phase == domain.PhaseAspirations {
		return aspirationFallback(topicID, domain.UserMessageCount(log))
	}
	return conversationFallback(topicID, village, log)
}

func conversationFallback(topicID string, village domain.VillageInfo, log []domain.Message) string {
	userMessages := domain.UserMessageCount(log)

	if len(log) > 0 && signalsRepetition(log[len(log)-1].Content) {
		return fmt.Sprintf("I apologize for any repetition. Thank you for that information. Would you like to tell me more about another aspect of %s in %s?", topicID, village.Name)
	}

	switch topicID {
	case "demographics":
		switch userMessages {
		case 1:
			return fmt.Sprintf("Thank you for sharing that information. Could you tell me about the age distribution in %s? For example, is there a large proportion of children, working-age adults, or elderly people?", village.Name)
		case 2:
			return "That's helpful to understand. Have there been any significant changes in the population over the past few years? For example, are people moving away to cities or are new people moving in?"
		default:
			return fmt.Sprintf("Thank you for sharing these details about %s. This helps me understand your community better. Is there anything else important about the people and families in your village that would be helpful for me to know?", village.Name)
		}
	case "agriculture":
		switch userMessages {
		case 1:
			return "Thank you for that information about agriculture. Do most families keep any livestock or animals? If so, what types and roughly what percentage of households have them?"
		case 2:
			return "I see. Have you noticed any changes in agricultural productivity over recent years? Are harvests getting better, worse, or staying about the same?"
		default:
			return fmt.Sprintf("This information is very helpful. What would you say are the biggest challenges farmers in %s face today?", village.Name)
		}
	}

	return fmt.Sprintf("Thank you for sharing that information about %s in %s. Could you tell me more about how this affects daily life in your community?", topicID, village.Name)
}

func aspirationFallback(topicID string, userMessages int) string {
	switch userMessages {
	case 1:
		return fmt.Sprintf("Thank you for sharing those aspirations. What would you say are the main obstacles or challenges that prevent your community from achieving these goals related to %s?", topicID)
	case 2:
		return "I appreciate your insights about both the aspirations and challenges. Have there been any previous attempts to address these challenges? What worked or didn't work?"
	default:
		return fmt.Sprintf("Thank you for sharing these valuable perspectives. In your view, what would be the most important first step toward realizing your community's aspirations for %s?", topicID)
	}
}
