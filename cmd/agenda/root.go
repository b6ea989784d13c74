package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/office-agenda/internal/application"
	"github.com/example/office-agenda/internal/config"
	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/logging"
)

// Version is stamped at build time.
var Version = "dev"

type rootOptions struct {
	loadConfig func() (config.Config, error)
	now        func() time.Time
}

// cli carries global flag values and the app opened for the running command.
type cli struct {
	opts     rootOptions
	app      *app
	as       string
	password string
	dsn      string
}

// run builds the command tree, executes args and releases the storage.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, opts rootOptions) error {
	c := &cli{opts: opts}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := c.app.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close storage: %w", cerr)
	}
	return describe(err)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "agenda",
		Short:         "Office agenda tracker: record daily activities and print signed reports",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.as, "as", "", "Identity ID or username to act as (default $AGENDA_USER)")
	root.PersistentFlags().StringVar(&c.password, "password", "", "Admin password for the selected identity")
	root.PersistentFlags().StringVar(&c.dsn, "db", "", "SQLite DSN overriding $AGENDA_SQLITE_DSN")

	root.AddCommand(c.identitiesCmd())
	root.AddCommand(c.weekCmd())
	root.AddCommand(c.groupsCmd())
	root.AddCommand(c.agendaCmd())
	root.AddCommand(c.exportCmd())
	root.AddCommand(c.personsCmd())
	root.AddCommand(c.settingsCmd())
	root.AddCommand(c.snapshotCmd())
	return root
}

func (c *cli) open(cmd *cobra.Command) error {
	if c.app != nil {
		return nil
	}
	cfg, err := c.opts.loadConfig()
	if err != nil {
		return err
	}
	if dsn := strings.TrimSpace(c.dsn); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	a, err := openApp(cmd.Context(), cfg, cmd.ErrOrStderr(), c.opts.now)
	if err != nil {
		return err
	}
	c.app = a
	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), a.logger.With("command", cmd.CommandPath())))
	return nil
}

// actor logs in with the global flags.
func (c *cli) actor(cmd *cobra.Command) (domain.Identity, error) {
	return c.app.login(cmd.Context(), c.as, c.password)
}

// describe turns service errors into messages fit for a terminal.
func describe(err error) error {
	var vErr *application.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &vErr):
		return fmt.Errorf("invalid input: %s", strings.TrimPrefix(vErr.Error(), "validation failed: "))
	case errors.Is(err, application.ErrUnauthorized):
		return errors.New("permission denied: this identity cannot change settings today")
	case errors.Is(err, application.ErrInvalidCredentials):
		return errors.New("wrong admin password")
	}
	return err
}

func (c *cli) identitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identities",
		Short: "List the identities that can log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tROLE\tACCESS")
			today := c.app.now()
			for _, identity := range c.app.auth.Identities() {
				access := "-"
				if domain.CanManageSettings(identity, today) {
					access = "settings"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", identity.ID, identity.Username, identity.Name, identity.Role, access)
			}
			return tw.Flush()
		},
	}
}
