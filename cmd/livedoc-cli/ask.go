package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-livedoc/pkg/answer"
	"github.com/goliatone/go-livedoc/pkg/engine"
	"github.com/goliatone/go-livedoc/pkg/prompt"
)

type askFlags struct {
	answersPath  string
	skipAnswered bool
	save         string
	output       string
	format       string
}

func newAskCmd(c *cli) *cobra.Command {
	f := &askFlags{}
	cmd := &cobra.Command{
		Use:   "ask [template]",
		Short: "Answer the questionnaire interactively",
		Long: "Walk the questionnaire in the terminal. Follow-up questions are only asked once their gate is " +
			"answered yes. The answers are written as JSON to --save (stdout if empty).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.open(cmd.Context(), args)
			if err != nil {
				return err
			}

			seed := answer.Map{}
			if f.answersPath != "" {
				if seed, err = answer.LoadFile(f.answersPath); err != nil {
					return err
				}
			}
			store := answer.NewStore(seed)

			driver := c.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.ErrOrStderr())
			}
			asker := prompt.New(
				prompt.WithDriver(driver),
				prompt.WithSkipAnswered(f.skipAnswered),
				prompt.WithOnAnswer(func(key string, _ answer.Value) {
					c.logger.Debug("answer recorded", "question", key, "spans", len(session.Affected(key)))
				}),
			)
			if err := asker.Ask(cmd.Context(), session.Questionnaire(), store); err != nil {
				return err
			}

			payload, err := answer.Encode(store.Snapshot())
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, f.save, append(payload, '\n'), "Answers"); err != nil {
				return err
			}

			if f.output == "" {
				return nil
			}
			result, err := session.Render(cmd.Context(), engine.RenderRequest{
				Answers:    store,
				Format:     f.format,
				Standalone: f.format == "html" || f.format == "",
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, f.output, result.Output, "Document")
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.answersPath, "answers", "a", "", "answers file to start from (JSON or YAML)")
	flags.BoolVar(&f.skipAnswered, "skip-answered", false, "only ask questions without an answer")
	flags.StringVar(&f.save, "save", "", "file to write the answers to (stdout if empty)")
	flags.StringVarP(&f.output, "output", "o", "", "also render the document to this file")
	flags.StringVarP(&f.format, "format", "f", "html", "format of the rendered document (html, text)")
	return cmd
}
