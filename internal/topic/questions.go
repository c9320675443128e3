package topic

import "fmt"

// conversationStarters are the fixed opening questions for the conversation
// phase, keyed by topic id.
var conversationStarters = map[string]string{
	"demographics": "Could you tell me about the population of your community? How many people live there?",
	"agriculture":  "What are the main agricultural activities in your community? What crops do people grow?",
	"power":        "What is the current situation regarding electricity and power in your community?",
	"education":    "Could you describe the education system and schools in your community?",
	"livelihoods":  "What are the main ways people earn a living in your community?",
	"healthcare":   "How do people access healthcare in your community? What facilities are available?",
	"political":    "Could you tell me about the political situation in your region? How stable is it?",
	"food":         "What is the food situation in your community? Do people have consistent access to adequate nutrition?",
	"leadership":   "Could you explain how leadership works in your community? Who makes decisions?",
}

// aspirationQuestions are the fixed opening questions for the aspirations
// phase, keyed by topic id.
var aspirationQuestions = map[string]string{
	"demographics": "What are your community's hopes for population growth or stability? What challenges do you face in this area?",
	"agriculture":  "What are your community's aspirations for agriculture and animal production? What prevents achieving these goals?",
	"power":        "What are your hopes regarding electricity and power access? What obstacles prevent reaching these goals?",
	"education":    "What are your community's aspirations for education? What barriers prevent achieving these educational goals?",
	"livelihoods":  "What are your hopes for jobs and livelihoods in your community? What obstacles prevent economic development?",
	"healthcare":   "What are your community's aspirations for healthcare? What prevents achieving better health outcomes?",
	"political":    "What are your hopes regarding political stability and governance? What challenges exist in this area?",
	"food":         "What are your community's aspirations for food security? What prevents achieving consistent access to nutrition?",
	"leadership":   "What are your hopes for leadership development in your community? What challenges exist in this area?",
}

// ConversationStarter returns the deterministic opening question for a
// conversation topic, with a generic template for unknown topics.
func ConversationStarter(topicID, village string) string {
	if q, ok := conversationStarters[topicID]; ok {
		return q
	}
	return fmt.Sprintf("I'd like to learn more about %s in %s. Could you share some information about this?", topicID, village)
}

// AspirationQuestion returns the deterministic opening question for an
// aspirations topic, with a generic template for unknown topics.
func AspirationQuestion(topicID string) string {
	if q, ok := aspirationQuestions[topicID]; ok {
		return q
	}
	return fmt.Sprintf("What are your community's hopes and aspirations regarding %s? What prevents these aspirations from being realized?", topicID)
}

// researchFocus gives the per-topic emphasis sentence appended to research
// synthesis prompts.
var researchFocus = map[string]string{
	"demographics": "Focus on population size, age distribution, gender ratio, household composition, and migration patterns.",
	"agriculture":  "Focus on crops grown, farming methods, irrigation, livestock, land use, and agricultural challenges.",
	"power":        "Focus on electricity access, power sources, reliability, alternative energy adoption, and energy infrastructure.",
	"education":    "Focus on schools, enrollment rates, educational quality, teacher availability, and educational challenges.",
	"livelihoods":  "Focus on income sources, employment patterns, economic activities, youth employment, and financial inclusion.",
	"healthcare":   "Focus on health facilities, disease burden, maternal and child health, water and sanitation, and healthcare access.",
	"political":    "Focus on governance structures, political stability, civic participation, and local administration.",
	"food":         "Focus on food availability, nutrition, dietary diversity, food production, and food security challenges.",
	"leadership":   "Focus on traditional and formal leadership structures, decision-making processes, and community organization.",
}

// ResearchFocus returns the emphasis sentence for a research topic, or an
// empty string when none is configured.
func ResearchFocus(topicID string) string {
	return researchFocus[topicID]
}
