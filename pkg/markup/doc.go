// Package markup turns an assembled render pass into an output format. The
// html formatter decorates markers through pongo2 templates and go-theme
// tokens; the text formatter produces a plain reading copy.
package markup
