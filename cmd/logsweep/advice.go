package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/logsweep/internal/assist"
	"github.com/dshills/logsweep/internal/render"
	"github.com/dshills/logsweep/internal/source"
)

// advice describes one of the model operations whose answer is shown as is.
type advice struct {
	use   string
	short string
	run   func(s *assist.Service, ctx context.Context, req assist.Request) (string, error)
}

var (
	adviceAnalyze = advice{
		use:   "analyze <file>",
		short: "Ask the model which log statements are worth keeping",
		run:   (*assist.Service).AnalyzeLogs,
	}
	adviceGenerate = advice{
		use:   "generate <file>",
		short: "Ask the model where logging should be added",
		run:   (*assist.Service).GenerateLogs,
	}
	adviceQuality = advice{
		use:   "quality <file>",
		short: "Ask the model for a code quality review",
		run:   (*assist.Service).AnalyzeQuality,
	}
)

func newAdviceCmd(a *app, adv advice) *cobra.Command {
	var (
		raw bool
		out string
	)

	cmd := &cobra.Command{
		Use:   adv.use,
		Short: adv.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := source.Load(args[0])
			if err != nil {
				return exitError(3, "failed to load %s: %v", args[0], err)
			}

			text, err := adv.run(a.service(), cmd.Context(), assist.Request{
				Code:     src.Raw,
				Language: src.Language,
				FileName: args[0],
			})
			if err != nil {
				return assistError(err)
			}

			if !raw && out == "" {
				style := ""
				if !a.color {
					style = "notty"
				}
				rendered, err := render.Terminal(text, style, render.DefaultWidth)
				if err != nil {
					return err
				}
				text = rendered
			}
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			return a.emit(out, text)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the model's Markdown without rendering it")
	cmd.Flags().StringVar(&out, "out", "", "Write the Markdown to a file")
	return cmd
}
