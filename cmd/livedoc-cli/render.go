package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/engine"
	"github.com/goliatone/go-livedoc/pkg/sample"
)

type renderFlags struct {
	answersPath   string
	sampleAnswers bool
	format        string
	theme         string
	variant       string
	standalone    bool
	sanitize      bool
	title         string
	output        string
}

func newRenderCmd(c *cli) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Render a template against an answers file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := f.answers()
			if err != nil {
				return err
			}
			session, err := c.open(cmd.Context(), args)
			if err != nil {
				return err
			}
			result, err := session.Render(cmd.Context(), engine.RenderRequest{
				Answers:    answers,
				Format:     f.format,
				Theme:      f.theme,
				Variant:    f.variant,
				Standalone: f.standalone,
				Sanitize:   f.sanitize,
				Title:      f.title,
			})
			if err != nil {
				return err
			}
			for _, issue := range result.Issues {
				c.logger.Warn("invalid answer", "question", issue.Key, "field", issue.Field, "reason", issue.Message)
			}
			if len(result.Missing) > 0 {
				c.logger.Info("document incomplete", "missing", len(result.Missing))
			}
			return writeOutput(cmd, f.output, result.Output, "Document")
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.answersPath, "answers", "a", "", "answers file (JSON or YAML)")
	flags.BoolVar(&f.sampleAnswers, "sample-answers", false, "use the embedded example answers")
	flags.StringVarP(&f.format, "format", "f", "html", "output format (html, text)")
	flags.StringVar(&f.theme, "theme", "", "marker theme name")
	flags.StringVar(&f.variant, "variant", "", "marker theme variant (light, dark)")
	flags.BoolVar(&f.standalone, "standalone", false, "wrap html output into a complete page")
	flags.BoolVar(&f.sanitize, "sanitize", false, "run html output through the sanitizing policy")
	flags.StringVar(&f.title, "title", "", "page title for standalone output")
	flags.StringVarP(&f.output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func (f *renderFlags) answers() (answer.Map, error) {
	if f.sampleAnswers && f.answersPath != "" {
		return nil, fmt.Errorf("--answers and --sample-answers are mutually exclusive")
	}
	if f.sampleAnswers {
		return sample.Answers(), nil
	}
	if f.answersPath == "" {
		return answer.Map{}, nil
	}
	return answer.LoadFile(f.answersPath)
}
