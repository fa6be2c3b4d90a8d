package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AkashAS-coder/Clarity-Care/export"
	"github.com/AkashAS-coder/Clarity-Care/translator"
)

var translateFlags struct {
	file      string
	audience  string
	tone      string
	highlight bool
	ai        bool
	endpoint  string
	out       string
	format    string
	html      bool
}

var translateCmd = &cobra.Command{
	Use:   "translate [note...]",
	Short: "Translate a note given as arguments, a file (-f) or stdin",
	Example: `  clarity translate "Pt w/ HTN and DM2 reports dyspnea"
  clarity translate -f visit.txt --ai --out plain-language-summary.txt`,
	RunE: runTranslate,
}

var statsCmd = &cobra.Command{
	Use:   "stats [text...]",
	Short: "Print readability statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readNote(cmd.InOrStdin(), args, "")
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(translator.ComputeStats(text))
	},
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the built-in sample notes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, s := range translator.Samples() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n", s.Label, s.Text)
		}
		return nil
	},
}

func init() {
	f := translateCmd.Flags()
	f.StringVarP(&translateFlags.file, "file", "f", "", "read the note from a file")
	f.StringVar(&translateFlags.audience, "audience", "", "adult, teen, caregiver or esl (default from config)")
	f.StringVar(&translateFlags.tone, "tone", "", "warm, direct or coach (default from config)")
	f.BoolVar(&translateFlags.highlight, "highlight", false, "mark plain-language terms in the HTML output (default from config)")
	f.BoolVar(&translateFlags.ai, "ai", false, "use the remote AI endpoint, falling back to local rules")
	f.StringVar(&translateFlags.endpoint, "endpoint", "", "remote /translate URL (default from config)")
	f.StringVarP(&translateFlags.out, "out", "o", "", "write an export to this path")
	f.StringVar(&translateFlags.format, "format", "txt", "export format: txt, md or html")
	f.BoolVar(&translateFlags.html, "html", false, "print the HTML fragment instead of plain text")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	note, err := readNote(cmd.InOrStdin(), args, translateFlags.file)
	if err != nil {
		return err
	}
	orch, err := newCLIOrchestrator(translateFlags.ai, translateFlags.endpoint)
	if err != nil {
		return err
	}

	out := orch.SubmitNote(cmd.Context(), note, cliOptions(cmd, translateFlags.audience, translateFlags.tone, translateFlags.highlight, translateFlags.ai))
	return printOutcome(cmd.OutOrStdout(), out, translateFlags.html, translateFlags.out, translateFlags.format)
}

// newCLIOrchestrator wires the HTTP remote when AI mode is requested on the
// command line or enabled in config.
func newCLIOrchestrator(ai bool, endpoint string) (*translator.Orchestrator, error) {
	opts := []translator.Option{translator.WithLogger(logger)}
	if ai || cfg.Remote.Enabled {
		if endpoint == "" {
			endpoint = cfg.Remote.Endpoint
		}
		client := &http.Client{Timeout: durationOrZero(cfg.RemoteTimeout())}
		remote, err := translator.NewHTTPRemote(endpoint, client)
		if err != nil {
			return nil, err
		}
		opts = append(opts, translator.WithRemote(remote))
	}
	return translator.NewOrchestrator(opts...), nil
}

// cliOptions fills unset flags from the translate section of the config.
// --highlight only wins when it was given explicitly.
func cliOptions(cmd *cobra.Command, audience, tone string, highlight, ai bool) translator.Options {
	if audience == "" {
		audience = cfg.Translate.Audience
	}
	if tone == "" {
		tone = cfg.Translate.Tone
	}
	if !cmd.Flags().Changed("highlight") {
		highlight = cfg.Translate.Highlight
	}
	return translator.Options{
		Audience:  audience,
		Tone:      tone,
		Highlight: highlight,
		UseAI:     ai || cfg.Remote.Enabled,
	}
}

func printOutcome(w io.Writer, out translator.Outcome, html bool, path, format string) error {
	if out.Result == nil {
		fmt.Fprintln(w, out.Status)
		return nil
	}
	if html {
		fmt.Fprintln(w, out.HTML)
	} else {
		fmt.Fprintln(w, export.PlainText(*out.Result))
	}
	fmt.Fprintf(w, "\n%s\nWords: %d | Read time: %d min | Clarity: %s\n",
		out.Status, out.Stats.WordCount, out.Stats.ReadTimeMinutes, out.Stats.Clarity)

	if path == "" {
		return nil
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	body, _, _, err := export.Render(*out.Result, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	logger.Info("export written to " + path)
	return nil
}

func readNote(stdin io.Reader, args []string, file string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case stdin != nil:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", errors.New("no note given")
	}
}
