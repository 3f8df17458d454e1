package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/murkotick/production-script-editor/internal/app/script/dto"
	"github.com/murkotick/production-script-editor/internal/app/script/usecases/replay_session"
	"github.com/murkotick/production-script-editor/internal/config"
	"github.com/murkotick/production-script-editor/internal/pkg/clock"
)

var errUnsupportedOutput = errors.New("unsupported output")

const (
	outputSummary = "summary"
	outputJSON    = "json"
	outputPage    = "page"
)

func newReplayCmd(cfgPath *string) *cobra.Command {
	var pagePath string
	var output string
	cmd := &cobra.Command{
		Use:   "replay SESSION.yaml",
		Short: "Replay a recorded editing session and report the undo history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			switch output {
			case outputSummary, outputJSON, outputPage:
			default:
				return fmt.Errorf("%w %q", errUnsupportedOutput, output)
			}

			script, err := readScript(args[0])
			if err != nil {
				return err
			}
			req := replay_session.Request{Script: script, RenderPage: output == outputPage}
			if pagePath != "" {
				f, err := os.Open(pagePath)
				if err != nil {
					return err
				}
				defer f.Close()
				req.Page = f
			}

			ctx := cmd.Context()
			store, err := newSessionStore(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			it := replay_session.NewInteractor(store, clock.RealClock{}, trackerOptions(ctx, cfg.Tracker)...)
			result, err := it.Execute(ctx, req)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), output, result)
		},
	}
	cmd.Flags().StringVarP(&pagePath, "page", "p", "", "production page to edit (blank page when empty)")
	cmd.Flags().StringVarP(&output, "output", "o", outputSummary, "output format: summary, json or page")
	return cmd
}

func readScript(path string) (replay_session.Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return replay_session.Script{}, err
	}
	defer f.Close()
	return replay_session.ParseScript(f)
}

func writeResult(w io.Writer, output string, result dto.SessionDTO) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case outputPage:
		_, err := io.WriteString(w, result.Page)
		return err
	}

	_, _ = fmt.Fprintf(w, "title: %s\n", result.Title)
	_, _ = fmt.Fprintf(w, "view: %s (view mode %t)\n", result.CurrentView, result.ViewMode)
	_, _ = fmt.Fprintf(w, "rows: %d\n", len(result.Rows))
	_, _ = fmt.Fprintf(w, "undo (%d/%d):\n", len(result.History.Undo), result.History.Limit)
	writeRecords(w, result.History.Undo)
	_, _ = fmt.Fprintf(w, "redo (%d):\n", len(result.History.Redo))
	writeRecords(w, result.History.Redo)
	return nil
}

// writeRecords prints newest first, the order undo would visit them.
func writeRecords(w io.Writer, records []dto.RecordDTO) {
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.Kind == "field" {
			_, _ = fmt.Fprintf(w, "  %s %s: %q -> %q\n", r.Description, r.FieldID, r.OldValue, r.NewValue)
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s (%s, %d bytes of rows)\n", r.Description, r.CurrentView, r.MarkupBytes)
	}
}
