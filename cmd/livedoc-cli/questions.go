package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newQuestionsCmd(c *cli) *cobra.Command {
	var outputFormat string
	cmd := &cobra.Command{
		Use:   "questions [template]",
		Short: "Print the questionnaire derived from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.open(cmd.Context(), args)
			if err != nil {
				return err
			}
			q := session.Questionnaire()
			switch outputFormat {
			case "yaml", "":
				return printYAML(cmd, q.Questions())
			case "json":
				return printJSON(cmd, q.Questions())
			case "schema":
				return printJSON(cmd, q.DocumentSchema())
			default:
				return fmt.Errorf("unknown output format %q", outputFormat)
			}
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "output format (yaml, json, schema)")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func printYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
