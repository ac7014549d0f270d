package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	livedoc "github.com/goliatone/go-livedoc"
	"github.com/goliatone/go-livedoc/pkg/document"
	"github.com/goliatone/go-livedoc/pkg/engine"
	"github.com/goliatone/go-livedoc/pkg/markup"
	"github.com/goliatone/go-livedoc/pkg/markup/html"
	"github.com/goliatone/go-livedoc/pkg/markup/text"
	"github.com/goliatone/go-livedoc/pkg/profile"
	"github.com/goliatone/go-livedoc/pkg/prompt"
	"github.com/goliatone/go-livedoc/pkg/sample"
)

// cli carries the persistent flags shared by every subcommand.
type cli struct {
	logLevel    string
	profilePath string
	strict      bool
	mappings    map[string]string
	httpTimeout time.Duration
	templates   string

	logger *slog.Logger
	// driver replaces the terminal prompts; nil uses survey.
	driver prompt.Driver
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&cli{})
}

func newRootCmdWith(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "livedoc-cli",
		Short: "Live document generator",
		Long: "Render templated legal documents from questionnaire answers. Templates mark fill-ins with [..], " +
			"optional sentences with {..} and optional sections with (HEADING ..). Without a template argument the " +
			"embedded employment agreement is used.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", c.logLevel, err)
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&c.profilePath, "profile", "", "path to a YAML/JSON profile (default: embedded employment agreement profile)")
	flags.BoolVar(&c.strict, "strict", false, "only resolve spans covered by the profile or --map")
	flags.StringToStringVar(&c.mappings, "map", nil, "label=question overrides for reworded questions")
	flags.DurationVar(&c.httpTimeout, "http-timeout", 30*time.Second, "timeout for templates fetched over HTTP(S)")
	flags.StringVar(&c.templates, "templates-dir", "", "directory of marker templates overriding the built-in html ones")

	rootCmd.AddCommand(
		newRenderCmd(c),
		newSpansCmd(c),
		newQuestionsCmd(c),
		newAskCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

func (c *cli) engine() (*engine.Engine, error) {
	options := []engine.Option{
		engine.WithLogger(c.logger),
		engine.WithLoader(livedoc.NewLoader(document.WithHTTPFallback(c.httpTimeout))),
	}
	if c.profilePath != "" {
		p, err := profile.LoadFile(c.profilePath)
		if err != nil {
			return nil, err
		}
		options = append(options, engine.WithProfile(p))
	}
	if len(c.mappings) > 0 {
		options = append(options, engine.WithMappings(c.mappings))
	}
	if c.strict {
		options = append(options, engine.WithStrict())
	}
	if c.templates != "" {
		formatter, err := html.New(html.WithTemplatesDir(c.templates))
		if err != nil {
			return nil, err
		}
		registry := markup.NewRegistry()
		registry.MustRegister(formatter)
		registry.MustRegister(text.New())
		options = append(options, engine.WithRegistry(registry))
	}
	return engine.New(options...), nil
}

// open starts a session over the template named by args, or over the
// embedded sample when no template is given.
func (c *cli) open(ctx context.Context, args []string) (*engine.Session, error) {
	eng, err := c.engine()
	if err != nil {
		return nil, err
	}
	req := engine.Request{}
	if len(args) == 0 {
		doc := sample.Document()
		req.Document = &doc
	} else {
		src, err := document.ParseSource(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid template source: %w", err)
		}
		req.Source = src
	}
	return eng.Open(ctx, req)
}

func writeOutput(cmd *cobra.Command, path string, data []byte, what string) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s written to %s\n", what, path)
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
