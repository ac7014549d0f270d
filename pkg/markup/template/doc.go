// Package template defines the template seam used by markup formatters to
// decorate answered and pending spans. Formatters depend on TemplateRenderer
// only, so a different engine can be injected without touching them.
package template
