// Package questionnaire derives the question list of a template from its
// resolved spans. Each question carries an input type, a required flag, an
// optional gate and a kin-openapi schema used to validate answers.
package questionnaire
