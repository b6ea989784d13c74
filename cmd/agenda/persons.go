package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/office-agenda/internal/application"
)

func (c *cli) personsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "persons",
		Short: "Manage the employee roster",
	}
	cmd.AddCommand(c.personsListCmd(), c.personsClassesCmd(), c.personsAddCmd(), c.personsUpdateCmd(), c.personsDeleteCmd())
	return cmd
}

func (c *cli) personsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [QUERY]",
		Short: "List employees, optionally filtered by name or position",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tNIP\tPOSITION\tCLASS")
			for _, person := range c.app.roster.List(strings.Join(args, " ")) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", person.ID, person.Name, person.NIP, person.Position, person.PositionClass)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) personsClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List the position and class pairs in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "POSITION\tCLASS")
			for _, pair := range c.app.roster.PositionClasses() {
				fmt.Fprintf(tw, "%s\t%s\n", pair.Position, pair.Class)
			}
			return tw.Flush()
		},
	}
}

func personFlags(cmd *cobra.Command, input *application.PersonInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&input.NIP, "nip", "", "Civil-service number")
	cmd.Flags().StringVar(&input.Position, "position", "", "Position title")
	cmd.Flags().StringVar(&input.PositionClass, "class", "", "Position class")
}

func (c *cli) personsAddCmd() *cobra.Command {
	var input application.PersonInput
	cmd := &cobra.Command{
		Use:   "add --name NAME",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			person, err := c.app.roster.Add(cmd.Context(), actor, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", person.Name, person.ID)
			return nil
		},
	}
	personFlags(cmd, &input)
	return cmd
}

func (c *cli) personsUpdateCmd() *cobra.Command {
	var input application.PersonInput
	cmd := &cobra.Command{
		Use:   "update ID --name NAME",
		Short: "Replace an employee's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			person, err := c.app.roster.Update(cmd.Context(), actor, args[0], input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s)\n", person.Name, person.ID)
			return nil
		},
	}
	personFlags(cmd, &input)
	return cmd
}

func (c *cli) personsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove an employee from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			if err := c.app.roster.Delete(cmd.Context(), actor, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
