package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-livedoc/pkg/engine"
)

type spanRow struct {
	Index    int    `json:"index" yaml:"index"`
	Kind     string `json:"kind" yaml:"kind"`
	Parent   int    `json:"parent" yaml:"parent"`
	Rule     string `json:"rule" yaml:"rule"`
	Question string `json:"question,omitempty" yaml:"question,omitempty"`
	Gate     string `json:"gate,omitempty" yaml:"gate,omitempty"`
	Literal  string `json:"literal" yaml:"literal"`
}

func newSpansCmd(c *cli) *cobra.Command {
	var outputFormat string
	cmd := &cobra.Command{
		Use:   "spans [template]",
		Short: "List the templated regions of a template and the questions that drive them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := c.open(cmd.Context(), args)
			if err != nil {
				return err
			}
			rows := spanRows(session)
			switch outputFormat {
			case "json":
				return printJSON(cmd, rows)
			case "yaml":
				return printYAML(cmd, rows)
			case "table", "":
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "#\tKIND\tRULE\tQUESTION\tLITERAL")
				for _, row := range rows {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", row.Index, row.Kind, row.Rule, row.Question, abbreviate(row.Literal, 48))
				}
				return w.Flush()
			default:
				return fmt.Errorf("unknown output format %q", outputFormat)
			}
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

func spanRows(session *engine.Session) []spanRow {
	resolutions := session.Resolutions()
	rows := make([]spanRow, 0, len(resolutions))
	for i, sp := range session.Spans() {
		res := resolutions[i]
		row := spanRow{
			Index:   sp.Index,
			Kind:    sp.Kind.String(),
			Parent:  sp.Parent,
			Rule:    res.Rule.String(),
			Gate:    res.Gate,
			Literal: sp.Literal,
		}
		if res.Resolved() {
			row.Question = res.Key
		}
		rows = append(rows, row)
	}
	return rows
}

func abbreviate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
