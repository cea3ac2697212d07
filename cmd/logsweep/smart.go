package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/logsweep/internal/assist"
	"github.com/dshills/logsweep/internal/render"
	"github.com/dshills/logsweep/internal/source"
)

type smartFlags struct {
	apply  bool
	format string
	out    string
}

// smartOutput is the JSON form of a smart removal.
type smartOutput struct {
	File     string `json:"file"`
	Hash     string `json:"hash"`
	Language string `json:"language"`
	Applied  bool   `json:"applied"`
	assist.Result
}

func newSmartCmd(a *app) *cobra.Command {
	f := &smartFlags{}

	cmd := &cobra.Command{
		Use:   "smart <file>",
		Short: "Ask the model to remove debug logging while keeping error reporting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmart(cmd, a, args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.apply, "apply", false, "Write the cleaned code back to the file")
	flags.StringVar(&f.format, "format", "text", "Output format: text, md or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	return cmd
}

func runSmart(cmd *cobra.Command, a *app, path string, f *smartFlags) error {
	if f.format != "text" && f.format != "md" && f.format != "json" {
		return exitError(3, "unknown format: %s", f.format)
	}

	// 1. Load file
	src, err := source.Load(path)
	if err != nil {
		return exitError(3, "failed to load %s: %v", path, err)
	}

	// 2. Reconcile with the model
	res, err := a.service().SmartRemove(cmd.Context(), assist.Request{
		Code:     src.Raw,
		Language: src.Language,
		FileName: path,
	})
	if err != nil {
		return assistError(err)
	}

	// 3. Apply
	applied := false
	if f.apply {
		switch {
		case !res.Extracted:
			fmt.Fprintln(a.stderr, render.Warn("the model returned no code block; %s was not changed", path))
		case strings.TrimSpace(res.Code) == "" && strings.TrimSpace(src.Raw) != "":
			return exitError(1, "refusing to replace %s with empty code", path)
		case res.Code == src.Raw:
			fmt.Fprintln(a.stderr, render.Info("%s is already clean", path))
		default:
			if err := source.Replace(src, res.Code); err != nil {
				return exitError(3, "failed to write %s: %v", path, err)
			}
			applied = true
		}
	}

	// 4. Output
	var output string
	switch f.format {
	case "json":
		output, err = marshal(smartOutput{
			File:     path,
			Hash:     source.Hash(res.Code),
			Language: src.Language,
			Applied:  applied,
			Result:   res,
		})
		if err != nil {
			return err
		}
	case "md":
		output = render.SmartMarkdown(path, src.Language, res)
	default:
		var b bytes.Buffer
		fmt.Fprintln(&b, render.Info("removed %d, kept %d log statement(s)", res.RemovedCount, res.KeptCount))
		if !res.Extracted {
			fmt.Fprintln(&b, render.Warn("the model returned no code block; showing the original code"))
		}
		if err := render.Highlight(&b, res.Code, src.Language, a.color && f.out == ""); err != nil {
			return err
		}
		if !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
		output = b.String()
	}
	if err := a.emit(f.out, output); err != nil {
		return err
	}

	if applied {
		fmt.Fprintln(a.stderr, render.Success("%s updated", path))
	}
	return nil
}
