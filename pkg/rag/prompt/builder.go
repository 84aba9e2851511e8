package prompt

import (
	"fmt"
	"strings"

	"pdf-chatbot-be/pkg/rag/index"
)

// Builder assembles the grounding prompt for one question from its retrieved
// passages.
type Builder struct {
	question string
	results  []index.Result
}

func NewBuilder(question string, results []index.Result) *Builder {
	return &Builder{
		question: question,
		results:  results,
	}
}

// Build creates a prompt that instructs the model to answer strictly from
// the retrieved passages.
func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeReferenceMaterial(&prompt)
	b.writeTask(&prompt)
	b.writeGuidelines(&prompt)
	b.writeUserQuestion(&prompt)

	return prompt.String()
}

func (b *Builder) writeReferenceMaterial(prompt *strings.Builder) {
	prompt.WriteString("<reference_material>\n")
	for i, result := range b.results {
		fmt.Fprintf(prompt, "<passage source=%q page=\"%d\" rank=\"%d\">\n", result.Passage.Source, result.Passage.Page, i+1)
		prompt.WriteString(result.Passage.Text)
		prompt.WriteString("\n</passage>\n")
	}
	prompt.WriteString("</reference_material>\n\n")
}

func (b *Builder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a knowledgeable assistant helping the user understand the documents they uploaded.\n")
	prompt.WriteString("Answer the user's question using the reference material above.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *Builder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Base your answer strictly on the reference material provided\n")
	prompt.WriteString("2. Be complete - don't skip relevant information from the material\n")
	prompt.WriteString("3. Be clear and well-organized in your presentation\n")
	prompt.WriteString("4. If the material doesn't contain what's being asked, say so honestly\n")
	prompt.WriteString("</guidelines>\n\n")
}

func (b *Builder) writeUserQuestion(prompt *strings.Builder) {
	prompt.WriteString("<user_question>\n")
	prompt.WriteString(b.question)
	prompt.WriteString("\n</user_question>\n")
}
