package generation

import (
	"context"
)

// Kind selects the prompt and output contract of a generation request.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindEssayQuestion  Kind = "essay_question"
	KindSummary        Kind = "summary"
)

// Request carries everything the provider needs for one generation call.
// FileContext holds the text of the user's source files, already fetched from
// object storage by the caller.
type Request struct {
	Kind          Kind
	Topic         string
	Difficulty    string
	Style         string
	QuestionCount int
	FileContext   []string
}

// Generator is the content-generation collaborator. GenerateStream invokes emit
// once per text fragment, in order; a nil return means the upstream stream
// completed cleanly. Any error from emit aborts forwarding.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	GenerateStream(ctx context.Context, req Request, emit func(chunk string) error) error
}
