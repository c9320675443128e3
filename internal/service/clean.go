package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
)

// instructionEchoes match instruction artifacts the model sometimes prepends
// to generated reports. Each is anchored to the start and consumes through
// the first blank line.
var instructionEchoes = []*regexp.Regexp{
	regexp.MustCompile(`(?s)^I'll create a research report based on.*?\n\n`),
	regexp.MustCompile(`(?s)^Here's a comprehensive research summary.*?\n\n`),
	regexp.MustCompile(`(?s)^Based on the search results provided.*?\n\n`),
	regexp.MustCompile(`(?s)^As a development researcher.*?\n\n`),
}

// CleanResponse strips leading instruction echoes and guarantees the text
// opens with a markdown title. When topicTitle is empty a generic title is
// used instead of the located one.
func CleanResponse(text, topicTitle string, village domain.VillageInfo) string {
	cleaned := strings.TrimSpace(text)
	for _, re := range instructionEchoes {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, "#") {
		return cleaned
	}
	if topicTitle != "" {
		return fmt.Sprintf("# %s in %s, %s\n\n%s", topicTitle, village.Name, village.Country, cleaned)
	}
	return "# Research Report\n\n" + cleaned
}
