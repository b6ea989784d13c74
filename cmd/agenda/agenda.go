package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/office-agenda/internal/agenda"
	"github.com/example/office-agenda/internal/application"
	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/i18n"
)

// agendaFile is the YAML shape accepted by "agenda save" and "agenda preview".
type agendaFile struct {
	Date  string         `yaml:"date"`
	Items []agendaItemIn `yaml:"items"`
}

type agendaItemIn struct {
	ID        string   `yaml:"id,omitempty"`
	Time      string   `yaml:"time"`
	Place     string   `yaml:"place"`
	Title     string   `yaml:"title"`
	Notes     string   `yaml:"notes,omitempty"`
	Attendees []string `yaml:"attendees,omitempty"`
}

func readAgendaFile(path string) (agendaFile, error) {
	var file agendaFile
	data, err := os.ReadFile(path)
	if err != nil {
		return file, err
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

// inputs converts file rows, filling blank time and place with the defaults
// of a new row.
func (f agendaFile) inputs() []application.ItemInput {
	inputs := make([]application.ItemInput, 0, len(f.Items))
	for _, item := range f.Items {
		input := application.DefaultItem()
		input.ID = item.ID
		if strings.TrimSpace(item.Time) != "" {
			input.Time = item.Time
		}
		if strings.TrimSpace(item.Place) != "" {
			input.Place = item.Place
		}
		input.Title = item.Title
		input.Notes = item.Notes
		input.AttendeeIDs = item.Attendees
		inputs = append(inputs, input)
	}
	return inputs
}

func (c *cli) weekCmd() *cobra.Command {
	var (
		date   string
		offset int
	)
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the Monday-to-Sunday week with the agenda recorded for each day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor := c.app.now()
			if date != "" {
				parsed, err := c.parseDay(date)
				if err != nil {
					return err
				}
				anchor = parsed
			}
			days := c.app.agenda.Week(agenda.ShiftWeek(anchor, offset))

			labels := c.app.labels
			tw := newTable(cmd.OutOrStdout())
			for _, day := range days {
				marker := " "
				if day.Today {
					marker = "*"
				}
				status, group := labels.Text(i18n.Empty), "-"
				if day.Scheduled() {
					status = labels.Text(i18n.ActivityCount, day.ItemCount)
					group = day.Group.ID
				}
				fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n", marker, labels.Weekday(day.Date), labels.LongDate(day.Date), status, group)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if agenda.HasGaps(days) {
				fmt.Fprintln(cmd.ErrOrStderr(), "note: some days of this week have no agenda")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Weeks to move forward (positive) or back (negative)")
	return cmd
}

func (c *cli) groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List every recorded agenda, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tDATE\tITEMS\tCREATOR")
			for _, summary := range c.app.agenda.Groups() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", summary.Group.ID, summary.Group.Date, summary.ItemCount, summary.Group.CreatorID)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) agendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Create, edit, show or delete a day's agenda",
	}
	cmd.AddCommand(c.agendaSaveCmd(), c.agendaShowCmd(), c.agendaDeleteCmd(), c.agendaPreviewCmd())
	return cmd
}

func (c *cli) agendaSaveCmd() *cobra.Command {
	var (
		file    string
		groupID string
	)
	cmd := &cobra.Command{
		Use:   "save -f FILE",
		Short: "Record an agenda from a YAML file; --group replaces an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			in, err := readAgendaFile(file)
			if err != nil {
				return err
			}
			group, err := c.app.agenda.SaveAgenda(cmd.Context(), application.SaveAgendaParams{
				Actor:   actor,
				GroupID: groupID,
				Date:    in.Date,
				Items:   in.inputs(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s for %s (%d activities)\n", group.ID, group.Date, len(in.Items))
			conflicts, err := c.app.agenda.Conflicts(group.ID)
			if err != nil {
				return err
			}
			for _, conflict := range conflicts {
				subject := conflict.Place
				if conflict.Type == agenda.ConflictTypeAttendee {
					subject = conflict.PersonID
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s and %s clash at %s (%s %s)\n", conflict.ItemID, conflict.WithItemID, conflict.Time, conflict.Type, subject)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML agenda file")
	cmd.Flags().StringVar(&groupID, "group", "", "ID of the agenda to replace")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) agendaShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show GROUP_ID",
		Short: "Print the activities of one agenda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, items, err := c.app.agenda.Group(args[0])
			if err != nil {
				return err
			}
			persons := c.app.store.Snapshot().Persons

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", group.ID, group.Date)
			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tTIME\tPLACE\tACTIVITY\tATTENDEES")
			for _, item := range items {
				names := make([]string, 0, len(item.AttendeeIDs))
				for _, person := range agenda.AttendeesOf(item, persons) {
					names = append(names, person.Name)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Time, item.Place, item.Title, strings.Join(names, ", "))
			}
			return tw.Flush()
		},
	}
}

func (c *cli) agendaDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete GROUP_ID",
		Short: "Delete an agenda and all of its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			if err := c.app.agenda.DeleteGroup(cmd.Context(), actor, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) agendaPreviewCmd() *cobra.Command {
	var file, output string
	cmd := &cobra.Command{
		Use:   "preview -f FILE",
		Short: "Render an agenda file to PDF without saving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			in, err := readAgendaFile(file)
			if err != nil {
				return err
			}
			doc, err := c.app.exports.Preview(cmd.Context(), actor, in.Date, in.inputs())
			if err != nil {
				return err
			}
			if output == "" {
				output = defaultReportName(c.app.cfg.OutputDir, "preview", in.Date)
			}
			return writeDocument(cmd, doc, output)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML agenda file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PDF path")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// parseDay reads a YYYY-MM-DD argument in the configured zone.
func (c *cli) parseDay(value string) (time.Time, error) {
	return domain.ParseDate(value, c.app.location())
}
