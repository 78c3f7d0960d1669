// ABOUTME: Instruction template wrapping retrieved context and the user question
// ABOUTME: Rendered with text/template; context chunks are joined by blank lines
package chat

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/harper/menuchat/internal/models"
)

// NoAnswer is the reply the model is told to give when context is insufficient
const NoAnswer = "I don't know based on the available information."

const defaultPrompt = `You are a helpful and context-aware assistant designed to answer restaurant-related questions using the provided context.
IMPORTANT: After answering the user's question, do not continue or generate additional Q&A. Do not assume the user wants more examples.

Instructions:
- Use ONLY the context to answer.
- If the answer isn't in the context, say: "{{.NoAnswer}}"
- Be direct and concise.
- Use clear formatting like numbered lists or line breaks.
- If the user asks for restaurant names, do NOT list items unless requested.
- Prioritize relevance when filtering or comparing.
- Do not make up data not present in the context.

### Examples:

Question: Which restaurants have gluten-free options?
Answer:
1. The Greenhouse
2. Urban Vegan
3. Spice Route

Question: What is the price range for Quay?
Answer: $12 - $365

Question: Does Bella Pasta have any spicy dishes?
Answer:
Yes. Bella Pasta has the following spicy items:
- Fried Calamari
- Boneless Buffalo Tenders

Question: Compare the number of vegetarian options between Sushi Zen and Urban Vegan.
Answer:
- Sushi Zen: 5 vegetarian items
- Urban Vegan: 11 vegetarian items

--- End of Examples ---

### Context:
{{.Context}}

### User Question:
{{.Question}}

### Final Answer:
`

// PromptData is the input to a PromptTemplate
type PromptData struct {
	Context  string
	Question string
	NoAnswer string
}

// PromptTemplate renders the generation prompt
type PromptTemplate struct {
	tmpl *template.Template
}

// DefaultPromptTemplate returns the built-in restaurant assistant prompt
func DefaultPromptTemplate() *PromptTemplate {
	return &PromptTemplate{tmpl: template.Must(template.New("prompt").Parse(defaultPrompt))}
}

// Render fills the template with the retrieved chunks and question
func (p *PromptTemplate) Render(results []models.SearchResult, question string) (string, error) {
	var b strings.Builder
	err := p.tmpl.Execute(&b, PromptData{
		Context:  JoinContext(results),
		Question: question,
		NoAnswer: NoAnswer,
	})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return b.String(), nil
}

// JoinContext joins chunk contents with blank lines, in rank order
func JoinContext(results []models.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Content)
	}
	return strings.Join(parts, "\n\n")
}
