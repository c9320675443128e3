package service

import (
	"fmt"
	"strings"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
	"github.com/khallinan12345/community-research-assistant/internal/search"
	"github.com/khallinan12345/community-research-assistant/internal/topic"
)

// researchPrompt builds the synthesis instruction for one topic's search
// results. Snippets are embedded as numbered SOURCE/URL/SNIPPET blocks.
func researchPrompt(topicID, topicTitle string, village domain.VillageInfo, results []search.Result) string {
	var blocks strings.Builder
	for i, r := range results {
		fmt.Fprintf(&blocks, "\nSOURCE %d:\nTITLE: %s\nURL: %s\nSNIPPET: %s\n", i+1, r.Title, r.URL, r.Snippet)
	}

	focus := topic.ResearchFocus(topicID)
	if focus != "" {
		focus = "\n" + focus
	}

	return fmt.Sprintf(`You are analyzing search result snippets about %[1]s in %[2]s, %[3]s. Your task is to write a comprehensive, detailed research report.%[4]s

Search results:
%[5]s

Create a detailed research report that:
1. Thoroughly analyzes all available information about %[1]s in %[2]s
2. Extracts specific data, statistics, and facts from the snippets
3. Makes reasonable inferences where information is limited
4. Organizes findings into coherent sections with clear headings
5. Cites sources using [Source X] format

Your report MUST include:
- An overview section summarizing key findings
- 2-4 topic-specific sections analyzing different aspects
- A conclusion with implications or recommendations if possible
- Complete citations of all sources

FORMAT:
# %[6]s in %[2]s, %[3]s

## Overview
[Comprehensive overview]

## [First Aspect]
[Detailed analysis]

## [Second Aspect]
[Detailed analysis]

[Additional sections as needed]

## References
[Numbered list of sources]

The report should be written for development researchers who need comprehensive information. Make it substantive and informative.`,
		topicID, village.Name, village.Country, focus, blocks.String(), topicTitle)
}

// researchApology is the minimal document shown when synthesis fails after a
// successful search.
func researchApology(topicTitle string, village domain.VillageInfo, err error) string {
	return fmt.Sprintf(`# %s in %s, %s

We were unable to generate detailed summaries due to technical issues.

Error: %v

Please try again later or try with alternative search terms.`, topicTitle, village.Name, village.Country, err)
}

// insufficientDataNotice is returned by the comprehensive analysis when no
// research has been stored yet. No completion call is made in that case.
const insufficientDataNotice = "Insufficient research data available for comprehensive analysis. Please conduct research on more topics."

// analysisExcerptLen caps each topic's contribution to the consolidated
// analysis context.
const analysisExcerptLen = 1500

// analysisPrompt builds the cross-topic synthesis instruction from truncated
// per-topic research excerpts.
func analysisPrompt(village domain.VillageInfo, research map[string]string, order []domain.Topic) string {
	var consolidated strings.Builder
	for _, t := range order {
		text := research[t.ID]
		if text == "" {
			continue
		}
		if len(text) > analysisExcerptLen {
			text = text[:analysisExcerptLen]
		}
		fmt.Fprintf(&consolidated, "\n\n## %s RESEARCH:\n%s...\n", strings.ToUpper(t.ID), text)
	}

	return fmt.Sprintf(`You are a development research specialist analyzing data about %[1]s, %[2]s. Generate a comprehensive analysis report based on the following research data:

%[3]s

Your report should include:
- A title: # Comprehensive Analysis of %[1]s, %[2]s
- Executive summary with key findings across all research areas
- 3-5 cross-cutting themes that emerge from the research
- Analysis of how different aspects of community life interact
- 3-5 integrated recommendations that address multiple sectors
- Knowledge gaps and suggested approaches

Use markdown formatting with ## for section headers and * for bullet points.
Your response should ONLY include the final report content without repeating these instructions.`,
		village.Name, village.Country, consolidated.String())
}

// analysisApology is stored when the cross-topic synthesis call fails.
func analysisApology(village domain.VillageInfo, err error) string {
	return fmt.Sprintf(`# Comprehensive Analysis Error

We apologize, but an error occurred while generating the comprehensive analysis for %s.

Please try again later or contact support if the problem persists.

Error details: %v`, village.Name, err)
}

// assetPrompt builds the one-shot assets inventory instruction.
func assetPrompt(topicTitle, villageName string) string {
	return fmt.Sprintf(`Generate a detailed analysis of the assets related to %s in %s.
Include information on:
- Local and national government programs,
- NGOs or community initiatives,
- Available funding or support mechanisms,
- Local resources and any unique assets.
The report should be structured with clear headings and be written for development researchers.`, topicTitle, villageName)
}

// assetsIncompleteNotice is the single-shot fallback for the assets phase.
const assetsIncompleteNotice = "The AI research came back with incomplete results. Please try again."

// reportPrompt builds the final synthesis instruction, embedding the raw
// data snapshot as JSON context.
func reportPrompt(data ExportData, rawJSON string) string {
	village := data.VillageInfo
	name := village.Name
	if name == "" {
		name = "Unknown Village"
	}
	country := village.Country
	if country == "" {
		country = "Unknown Country"
	}
	role := village.Role
	if role == "" {
		role = "Community Expert"
	}

	return fmt.Sprintf(`You are a professional and scholarly report writer with expertise in assessing needs in rural African villages.

Below is a JSON file containing raw data from different phases of community development research for **%[1]s, %[2]s**. The local expert is a **%[3]s**. Please follow these instructions carefully.

%[4]s

### Your Task
Synthesize the information into a professionally structured, highly detailed community development report.
The report should be well-formatted with clear sections, structured for readability, and use bold headings for clarity.
Ensure that each section is fully developed, with logical flow and explanatory context.
Write in concise but informative paragraphs with clear line breaks between sections.

### Report Structure

### 1. Introduction
- Clearly state the village name, country, and local expert's role.
- Explain why this assessment is essential for community development planning.

### 2. Current State Analysis
Analyze the community's current situation across each research domain, combining
the web research (researchData) with the local expert's account (conversations):
demographics, agriculture and food security, power and energy access, employment
and livelihoods, education access, healthcare services, political stability and
governance, food security, and leadership and decision-making.
For each area, provide a concise, structured analysis explaining the current state.
Use bullet points where necessary for emphasis but ensure proper sentence flow.

### 3. Research Findings and Comprehensive Analysis
- Cross-cutting themes: identify key patterns and dependencies across different community areas.
- Interaction of community aspects: explain how challenges in one area affect others.
- Integrated recommendations: offer strategies that tackle multiple challenges at once.
- Knowledge gaps and suggested approaches: highlight areas needing further research.

### 4. Assets and Available Resources
Document current assets from assetsData: agricultural assets, power and energy
assets, education and training facilities, livelihood and economic resources, and
healthcare infrastructure. Ensure each asset has a dedicated subsection explaining
its relevance.

### 5. Challenges and Community Aspirations
Identify the community's key aspirations from aspirationsData, covering each topic
area. Each challenge should be clearly defined with structured explanations.

### 6. Recommendations
Each recommendation must be detailed and justified, and must answer: what exactly
is being recommended, why it is essential based on the research and aspirations,
and how it will be implemented to achieve results rapidly.

### 7. Conclusion
Summarize the development priorities and describe how the community can move
toward self-sufficiency.

Now, generate the final report in well-structured plain text.`,
		name, country, role, rawJSON)
}
