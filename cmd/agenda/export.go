package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/example/office-agenda/internal/report"
)

func (c *cli) exportCmd() *cobra.Command {
	var groupID, date, output string
	cmd := &cobra.Command{
		Use:   "export (--group ID | --date YYYY-MM-DD)",
		Short: "Render a recorded agenda as a signed PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			author, err := c.actor(cmd)
			if err != nil {
				return err
			}

			var doc *report.Document
			switch {
			case groupID != "":
				doc, err = c.app.exports.ExportGroup(cmd.Context(), author, groupID)
			case date != "":
				day, perr := c.parseDay(date)
				if perr != nil {
					return perr
				}
				doc, err = c.app.exports.ExportDate(cmd.Context(), author, day)
			default:
				return errors.New("pass --group or --date")
			}
			if err != nil {
				return err
			}

			if output == "" {
				label := groupID
				if date != "" {
					label = date
				}
				output = defaultReportName(c.app.cfg.OutputDir, "agenda", label)
			}
			return writeDocument(cmd, doc, output)
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "ID of the agenda to export")
	cmd.Flags().StringVar(&date, "date", "", "Export the agenda recorded for this date")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PDF path (default in $AGENDA_OUTPUT_DIR)")
	cmd.MarkFlagsMutuallyExclusive("group", "date")
	return cmd
}

// writeDocument validates doc and writes it to path.
func writeDocument(cmd *cobra.Command, doc *report.Document, path string) error {
	content := doc.Bytes()
	info, err := report.Inspect(bytes.NewReader(content))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d %s)\n", path, humanize.Bytes(uint64(len(content))), info.PageCount, plural(info.PageCount, "page", "pages"))
	if doc.DateFallback {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: date %q is not a calendar date and was printed as written\n", doc.Subtitle)
	}
	return nil
}

// defaultReportName builds <dir>/<kind>-<label>.pdf with a filesystem-safe label.
func defaultReportName(dir, kind, label string) string {
	label = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, strings.TrimSpace(label))
	if label == "" {
		label = "untitled"
	}
	return filepath.Join(dir, kind+"-"+label+".pdf")
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
