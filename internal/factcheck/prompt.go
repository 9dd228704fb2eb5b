package factcheck

import "strings"

// QuizSize is the number of questions the model is asked to write.
const QuizSize = 10

// BuildPrompt composes the instruction sent to the model. The news text is embedded
// verbatim; quoting it safely is the caller's concern.
func BuildPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("You are a fact-checking AI.\n\n")
	sb.WriteString("Analyze the following news:\n")
	sb.WriteString(`"""`)
	sb.WriteString(text)
	sb.WriteString(`"""`)
	sb.WriteString("\n\n")

	sb.WriteString("Tasks:\n")
	sb.WriteString("1. Determine if the news is True or Fake, with a confidence score between 0.0 and 1.0.\n")
	sb.WriteString("2. Provide a detailed explanation with sources.\n")
	sb.WriteString("3. Generate exactly 10 unique multiple-choice quiz questions about the news, with exactly 3 options each, and indicate the correct answer.\n")
	sb.WriteString("4. Return ONLY a valid JSON object in this format:\n")
	sb.WriteString(`{
  "label": "True" or "Fake",
  "confidence": 0.0-1.0,
  "source": "URL or text",
  "explanation": "Reason why the news is true or fake",
  "quiz": [
    {"question": "...", "options": ["...", "...", "..."], "answer": "..."}
  ]
}`)
	sb.WriteString("\n")
	sb.WriteString("The answer of every question must be copied exactly from its options.\n")
	sb.WriteString("Wrap the JSON inside triple backticks with \"json\" (```json ... ```).\n")

	return sb.String()
}
