// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/agroconnect/agroconnect/apiclient"
	"github.com/agroconnect/agroconnect/cliparse"
	"github.com/agroconnect/agroconnect/logging"
	"github.com/agroconnect/agroconnect/session"
	"github.com/agroconnect/agroconnect/views"
)

// cli carries what every command needs once the root has been set up
type cli struct {
	in     io.Reader
	out    io.Writer
	notify *consoleNotifier

	backendURL  string
	sessionFile string
	verbose     bool

	api     *apiclient.Client
	storage *session.FileStorage
	app     *views.App
}

// consoleNotifier prints view notifications. Errors it has printed are not
// printed again by run.
type consoleNotifier struct {
	out, errOut io.Writer
	errored     bool
}

func (n *consoleNotifier) Success(msg string) {
	fmt.Fprintln(n.out, msg)
}

func (n *consoleNotifier) Error(msg string) {
	n.errored = true
	fmt.Fprintln(n.errOut, "Error:", msg)
}

// run executes the CLI and returns the process exit code
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	c := &cli{in: in, out: out, notify: &consoleNotifier{out: out, errOut: errOut}}

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.Execute(); err != nil {
		if !c.notify.errored {
			fmt.Fprintln(errOut, "Error:", err)
		}
		return 1
	}
	return 0
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "agroconnect",
		Short:         "Farmer and buyer marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.PersistentFlags().StringVar(&c.backendURL, "backend", "", "backend URL (overrides AGROCONNECT_BACKEND_URL)")
	root.PersistentFlags().StringVar(&c.sessionFile, "session", "", "session file (overrides AGROCONNECT_SESSION_FILE)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log requests")

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.openCmd(),
		c.cropsCmd(),
		c.inboxCmd(),
		c.marketCmd(),
		c.searchCmd(),
		c.contactCmd(),
	)
	return root
}

func (c *cli) setup() error {
	if err := cliparse.LoadEnv(); err != nil {
		return err
	}

	cfg, err := cliparse.ClientFromEnv()
	if err != nil {
		return err
	}
	if c.backendURL != "" {
		cfg.BackendURL = c.backendURL
	}
	if c.sessionFile != "" {
		cfg.SessionFile = c.sessionFile
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	logger, _ := logging.Setup(c.notify.errOut, logging.Options{Level: level})

	c.api = apiclient.New(cfg.BackendURL,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithLogger(logger),
	)

	c.storage = session.NewFileStorage(cfg.SessionFile)
	store := session.NewStore(c.storage)
	if _, err := store.Load(); err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	c.app = views.NewApp(c.api, store, c.notify)
	return nil
}
