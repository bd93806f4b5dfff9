package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/client"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/session"
	"github.com/spf13/cobra"
)

type options struct {
	server  string
	token   string
	timeout time.Duration
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "ncr",
		Short:         "Record non-conformance reports from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.token == "" {
				return errors.New("an access token is required (--token or NCR_ACCESS_TOKEN)")
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("NCR_SERVER", "http://localhost:8080"), "report API base URL")
	flags.StringVar(&opts.token, "token", os.Getenv("NCR_ACCESS_TOKEN"), "identity provider access token")
	flags.DurationVar(&opts.timeout, "timeout", 90*time.Second, "per-request timeout")

	root.AddCommand(whoamiCommand(opts))
	root.AddCommand(listCommand(opts))
	root.AddCommand(newReportCommand(opts))
	return root
}

func (o *options) client() *client.Client {
	return client.New(o.server, o.token, o.timeout)
}

// signIn resolves the token to an identity and publishes it, which makes the
// controller load the report list.
func (o *options) signIn(ctx context.Context) (*session.Controller, error) {
	api := o.client()
	user, err := api.Me(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			return nil, errors.New("authentication failed: sign in again and pass a fresh token")
		}
		return nil, err
	}

	notifier := identity.NewNotifier()
	ctrl := session.NewController(api, notifier, o.timeout)
	notifier.Publish(user)
	return ctrl, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printReport(w io.Writer, r models.Report) {
	fmt.Fprintf(w, "#%d  %s\n", r.ID, r.CreatedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(w, "  What happened: %s\n", r.WhatHappened)
	fmt.Fprintf(w, "  When:          %s\n", r.WhenHappened)
	fmt.Fprintf(w, "  Who:           %s\n", r.WhoInvolved)
	fmt.Fprintf(w, "  Outcome:       %s\n", r.Outcome)
	fmt.Fprintf(w, "  Next steps:    %s\n", r.NextSteps)
}
