package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/extraction"
	"github.com/spf13/cobra"
)

func whoamiCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := opts.client().Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), user.ID.String(), user.Email)
			return nil
		},
	}
}

func listCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your reports, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := opts.signIn(cmd.Context())
			if err != nil {
				return err
			}
			defer ctrl.Close()

			reports := ctrl.Snapshot().Reports
			out := cmd.OutOrStdout()
			if len(reports) == 0 {
				fmt.Fprintln(out, "No reports yet.")
				return nil
			}
			for _, r := range reports {
				printReport(out, r)
			}
			return nil
		},
	}
}

func newReportCommand(opts *options) *cobra.Command {
	var (
		text string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Extract a report from free text, review it, and save it",
		Long: "Reads the incident description from --text or from standard input up to the first " +
			"empty line, asks the server to extract the five report fields, shows the draft and " +
			"saves it once confirmed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if text == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Describe the incident, then an empty line:")
				var err error
				if text, err = readParagraph(in); err != nil {
					return err
				}
			}

			ctrl, err := opts.signIn(cmd.Context())
			if err != nil {
				return err
			}
			defer ctrl.Close()

			ctrl.SetInput(strings.TrimSpace(text))
			draft, err := ctrl.Analyze(cmd.Context())
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}
			printDraft(out, draft)

			if !yes {
				fmt.Fprint(out, "Save this report? [y/N] ")
				answer, _ := in.ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					return errors.New("not saved")
				}
			}

			report, err := ctrl.Save(cmd.Context())
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
			fmt.Fprintln(out, "Saved.")
			printReport(out, *report)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "incident description (default: read from stdin)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "save without asking for confirmation")
	return cmd
}

func printDraft(w io.Writer, d *extraction.Draft) {
	fmt.Fprintln(w, "Draft:")
	fmt.Fprintf(w, "  What happened: %s\n", d.WhatHappened)
	fmt.Fprintf(w, "  When:          %s\n", d.WhenHappened)
	fmt.Fprintf(w, "  Who:           %s\n", d.WhoInvolved)
	fmt.Fprintf(w, "  Outcome:       %s\n", d.Outcome)
	fmt.Fprintf(w, "  Next steps:    %s\n", d.NextSteps)
}

// readParagraph reads lines until an empty line or EOF.
func readParagraph(r *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := r.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" && (len(lines) > 0 || err != nil) {
			break
		}
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.Join(lines, "\n"), nil
}
