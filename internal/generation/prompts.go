package generation

import (
	"fmt"
	"strings"
)

const multipleChoiceFormat = `[
  {
    "question_id": "q1",
    "question": "question statement",
    "choices": ["choice A", "choice B", "choice C", "choice D"],
    "correct_choice": "choice A",
    "explanation": "why the correct choice is correct"
  }
]`

const essayQuestionFormat = `[
  {
    "question_id": "q1",
    "question": "essay question statement",
    "guidance": "what a strong answer should cover"
  }
]`

// buildPrompt renders the provider prompt for a request. Source material is
// appended last so instructions are never buried under long documents.
func buildPrompt(req Request) string {
	var b strings.Builder

	switch req.Kind {
	case KindMultipleChoice:
		count := req.QuestionCount
		if count <= 0 {
			count = 5
		}
		fmt.Fprintf(&b, "Create %d multiple-choice questions about %q.\n", count, req.Topic)
		if req.Difficulty != "" {
			fmt.Fprintf(&b, "Difficulty: %s.\n", req.Difficulty)
		}
		fmt.Fprintf(&b, "Respond with JSON only, exactly in this format:\n%s\n", multipleChoiceFormat)

	case KindEssayQuestion:
		count := req.QuestionCount
		if count <= 0 {
			count = 3
		}
		fmt.Fprintf(&b, "Create %d essay questions about %q.\n", count, req.Topic)
		if req.Difficulty != "" {
			fmt.Fprintf(&b, "Difficulty: %s.\n", req.Difficulty)
		}
		fmt.Fprintf(&b, "Respond with JSON only, exactly in this format:\n%s\n", essayQuestionFormat)

	case KindSummary:
		style := req.Style
		if style == "" {
			style = "concise"
		}
		fmt.Fprintf(&b, "Write a %s summary of the source material below, in markdown.\n", style)
		if req.Topic != "" {
			fmt.Fprintf(&b, "Focus on: %s.\n", req.Topic)
		}

	default:
		fmt.Fprintf(&b, "Answer the following request: %s\n", req.Topic)
	}

	if len(req.FileContext) > 0 {
		b.WriteString("\nSource material:\n")
		for i, doc := range req.FileContext {
			fmt.Fprintf(&b, "--- document %d ---\n%s\n", i+1, doc)
		}
	}

	return b.String()
}
