package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoQuestionnaire is returned when Ask is called without questions.
	ErrNoQuestionnaire = errors.New("prompt: questionnaire is required")
)
