// Package sample ships the employment agreement template the default
// profile was written for, together with a fully answered example.
package sample

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/document"
)

const (
	// Name labels the sample template.
	Name = "employment-agreement"

	templatePath = "templates/employment-agreement.html"
	answersPath  = "templates/employment-agreement.answers.yaml"
)

//go:embed templates/*
var files embed.FS

// FS exposes the embedded sample files.
func FS() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		return files
	}
	return sub
}

// Template returns the raw employment agreement template.
func Template() string {
	data, err := files.ReadFile(templatePath)
	if err != nil {
		panic(fmt.Sprintf("sample: read template: %v", err))
	}
	return string(data)
}

// Document wraps the template for the engine.
func Document() document.Document {
	return document.MustNewDocument(document.SourceInline(Name), []byte(Template()))
}

// Answers returns the example answers that complete every question.
func Answers() answer.Map {
	data, err := files.ReadFile(answersPath)
	if err != nil {
		panic(fmt.Sprintf("sample: read answers: %v", err))
	}
	answers, err := answer.Decode(data)
	if err != nil {
		panic(fmt.Sprintf("sample: decode answers: %v", err))
	}
	return answers
}
