package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/office-agenda/internal/application"
	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/sqlscript"
)

// letterheadFile is the YAML shape accepted by "settings letterhead".
type letterheadFile struct {
	InstitutionLine1 string `yaml:"line1"`
	InstitutionLine2 string `yaml:"line2"`
	Address          string `yaml:"address"`
	Contact          string `yaml:"contact"`
	SigningCity      string `yaml:"city"`
}

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Letterhead, database and access settings",
	}
	cmd.AddCommand(
		c.settingsShowCmd(),
		c.settingsLetterheadCmd(),
		c.settingsLogoCmd(),
		c.settingsPasswordCmd(),
		c.settingsAccessCmd("grant", true),
		c.settingsAccessCmd("revoke", false),
		c.settingsDatabaseCmd(),
		c.settingsTestConnectionCmd(),
		c.settingsSQLScriptCmd(),
	)
	return cmd
}

func (c *cli) settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the letterhead and database settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kop := c.app.settings.Letterhead()
			db := c.app.settings.Database()
			logo := "none"
			if kop.LogoData != "" {
				logo = "set"
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "line1\t%s\n", kop.InstitutionLine1)
			fmt.Fprintf(tw, "line2\t%s\n", kop.InstitutionLine2)
			fmt.Fprintf(tw, "address\t%s\n", kop.Address)
			fmt.Fprintf(tw, "contact\t%s\n", kop.Contact)
			fmt.Fprintf(tw, "city\t%s\n", kop.SigningCity)
			fmt.Fprintf(tw, "logo\t%s\n", logo)
			fmt.Fprintf(tw, "database\t%s %s:%s/%s (user %s)\n", db.Provider, db.Host, db.Port, db.Database, db.User)
			if saved, err := c.app.storage.UpdatedAt(cmd.Context()); err == nil {
				fmt.Fprintf(tw, "last saved\t%s\n", humanize.Time(saved))
			}
			return tw.Flush()
		},
	}
}

func (c *cli) settingsLetterheadCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "letterhead -f FILE",
		Short: "Replace the letterhead text from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var in letterheadFile
			if err := yaml.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			err = c.app.settings.UpdateLetterhead(cmd.Context(), actor, application.LetterheadInput{
				InstitutionLine1: in.InstitutionLine1,
				InstitutionLine2: in.InstitutionLine2,
				Address:          in.Address,
				Contact:          in.Contact,
				SigningCity:      in.SigningCity,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "letterhead updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML letterhead file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) settingsLogoCmd() *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "logo (FILE | --remove)",
		Short: "Upload a PNG or JPEG letterhead logo, or remove it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			if remove {
				if err := c.app.settings.RemoveLogo(cmd.Context(), actor); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "logo removed")
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("pass an image file or --remove")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			if err := c.app.settings.UploadLogo(cmd.Context(), actor, f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logo uploaded")
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the current logo")
	return cmd
}

func (c *cli) settingsPasswordCmd() *cobra.Command {
	var clearPassword bool
	cmd := &cobra.Command{
		Use:   "password (NEW_PASSWORD | --clear)",
		Short: "Change the admin password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			next := ""
			switch {
			case clearPassword:
			case len(args) == 1 && args[0] != "":
				next = args[0]
			default:
				return fmt.Errorf("pass the new password or --clear")
			}
			if err := c.app.settings.ChangeAdminPassword(cmd.Context(), actor, next); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "admin password changed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearPassword, "clear", false, "Remove the password check")
	return cmd
}

func (c *cli) settingsAccessCmd(verb string, grant bool) *cobra.Command {
	short := "Give an identity settings access for today"
	if !grant {
		short = "Withdraw an identity's settings access"
	}
	return &cobra.Command{
		Use:   verb + " IDENTITY_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			if err := c.app.settings.SetTemporaryAccess(cmd.Context(), actor, args[0], grant); err != nil {
				return err
			}
			if grant {
				fmt.Fprintf(cmd.OutOrStdout(), "%s may manage settings until the end of %s\n", args[0], domain.FormatDate(c.app.now()))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s no longer holds settings access\n", args[0])
			return nil
		},
	}
}

// databaseFlags binds the descriptor fields to flags.
func databaseFlags(cmd *cobra.Command, d *domain.DatabaseDescriptor) {
	cmd.Flags().StringVar(&d.Host, "host", "", "Database host")
	cmd.Flags().StringVar(&d.Port, "port", "", "Database port")
	cmd.Flags().StringVar(&d.User, "user", "", "Database user")
	cmd.Flags().StringVar(&d.Password, "db-password", "", "Database password")
	cmd.Flags().StringVar(&d.Database, "name", "", "Database name")
	cmd.Flags().StringVar((*string)(&d.Provider), "provider", "", "mysql or sqlexpress")
}

// mergeDescriptor overlays the flags that were set on stored.
func mergeDescriptor(cmd *cobra.Command, stored, given domain.DatabaseDescriptor) domain.DatabaseDescriptor {
	set := func(flag string, dst *string, value string) {
		if cmd.Flags().Changed(flag) {
			*dst = value
		}
	}
	set("host", &stored.Host, given.Host)
	set("port", &stored.Port, given.Port)
	set("user", &stored.User, given.User)
	set("db-password", &stored.Password, given.Password)
	set("name", &stored.Database, given.Database)
	if cmd.Flags().Changed("provider") {
		stored.Provider = given.Provider
	}
	return stored
}

func (c *cli) settingsDatabaseCmd() *cobra.Command {
	var given domain.DatabaseDescriptor
	cmd := &cobra.Command{
		Use:   "database",
		Short: "Update the database descriptor used for the schema script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			descriptor := mergeDescriptor(cmd, c.app.settings.Database(), given)
			if err := c.app.settings.UpdateDatabase(cmd.Context(), actor, descriptor); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database settings saved")
			return nil
		},
	}
	databaseFlags(cmd, &given)
	return cmd
}

func (c *cli) settingsTestConnectionCmd() *cobra.Command {
	var given domain.DatabaseDescriptor
	cmd := &cobra.Command{
		Use:   "test-connection",
		Short: "Check that the database descriptor is complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptor := mergeDescriptor(cmd, c.app.settings.Database(), given)
			if err := c.app.settings.TestConnection(descriptor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "connection settings for %s look complete\n", descriptor.Database)
			return nil
		},
	}
	databaseFlags(cmd, &given)
	return cmd
}

func (c *cli) settingsSQLScriptCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sql-script",
		Short: "Print or save the schema script for the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			script, err := c.app.settings.SQLScript(actor)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), script)
				return err
			}
			if err := os.WriteFile(output, []byte(script), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the script to a file (suggested name "+sqlscript.FileName+")")
	return cmd
}
