// Package profile loads the composite rules of a template: the headings that
// open optional sections, the gate questions behind optional sentences and
// sections, the sentinel phrases driven by follow-up questions, and the
// placeholders whose question differs from their label. Profiles are plain
// JSON or YAML documents so a template and its rules can ship together.
package profile
