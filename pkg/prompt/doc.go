// Package prompt walks a questionnaire in the terminal and records the
// answers into an answer.Store. Gated questions are only asked once their
// gate has been answered yes.
package prompt
