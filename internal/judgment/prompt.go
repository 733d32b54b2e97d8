package judgment

import "fmt"

// Disclaimer must open every generated judgment.
const Disclaimer = "Disclaimer: This is an AI-generated analysis and does not constitute legal advice. It is for academic and illustrative purposes only."

// Sections are the headings the model is asked to produce, in order.
var Sections = []string{
	"Factual Summary",
	"Key Legal Issues",
	"Legal Analysis & Precedents",
	"Suggested Conclusion",
}

const promptTemplate = `
As an AI legal analyst named "Nyaya Mitra," provide a preliminary, non-binding judgment for the following case based on the laws of India. Your analysis must be structured into four distinct sections:
1.  **%s:** Briefly summarize the key facts of the case.
2.  **%s:** Identify the primary legal questions that need to be addressed.
3.  **%s:** Analyze the issues based on relevant sections of Indian law (e.g., IPC, CrPC, Contract Act). You may cite fictional case precedents for illustrative purposes.
4.  **%s:** Based on the analysis, suggest a logical and fair outcome.

Begin your entire response with this mandatory disclaimer: "%s"

Case Details:
Case Title: %s, Parties: %s, Description: %s
`

// BuildPrompt embeds the case facts verbatim into the fixed analyst prompt.
func BuildPrompt(title, parties, description string) string {
	return fmt.Sprintf(promptTemplate,
		Sections[0], Sections[1], Sections[2], Sections[3],
		Disclaimer,
		title, parties, description,
	)
}
