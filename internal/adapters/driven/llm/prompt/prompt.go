// Package prompt holds the templates sent to the answer generation
// model. Kept separate so every LLM backend produces answers with the
// same grounding rules.
package prompt

import (
	"fmt"
	"strings"
)

// answerTemplate instructs the model to answer only from retrieved
// repository context.
const answerTemplate = `You are an expert code assistant analyzing a GitHub repository.
Based on the provided code context, answer the user's question accurately and concisely.

**Instructions:**
- Use ONLY the information from the provided context
- If the context doesn't contain relevant information, say so clearly
- Reference specific files when mentioning code
- Provide code snippets when relevant (use proper markdown formatting)
- Be precise and technical
- If multiple files are relevant, mention all of them
- Format your response in markdown for better readability

**Code Context:**
%s

**User Question:**
%s

**Answer:**`

// Answer renders the grounded question-answering prompt.
func Answer(query, contextBlock string) string {
	return fmt.Sprintf(answerTemplate, contextBlock, query)
}

// summaryTemplate asks for a short repository overview.
const summaryTemplate = `Provide a brief summary of this GitHub repository:

**Repository Name:** %s
**Number of Files:** %d
**Languages Detected:** %s

**Provide a 2-3 sentence summary about:**
1. What type of project this appears to be
2. Main technologies used
3. Likely purpose

Keep it concise and informative.`

// Summary renders the repository summary prompt.
func Summary(repoName string, fileCount int, languages []string) string {
	return fmt.Sprintf(summaryTemplate, repoName, fileCount, strings.Join(languages, ", "))
}
