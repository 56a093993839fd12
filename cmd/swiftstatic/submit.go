package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/swiftstatic/swiftstatic/internal/cli"
	"github.com/swiftstatic/swiftstatic/internal/client"
	"github.com/swiftstatic/swiftstatic/internal/submission"

	"github.com/spf13/cobra"
)

var errInvalidForm = errors.New("form has invalid fields")

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a free call",
	Example: `  swiftstatic book --name "Ann" --email ann@example.com \
    --service "Website Redesign" --date 2026-11-02 --time 10:00`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		form := &submission.BookingRequest{}
		form.Name, _ = flags.GetString("name")
		form.Email, _ = flags.GetString("email")
		form.Service, _ = flags.GetString("service")
		form.Date, _ = flags.GetString("date")
		form.Time, _ = flags.GetString("time")
		form.Message, _ = flags.GetString("message")
		return runSubmit(cmd, form)
	},
}

var contactCmd = &cobra.Command{
	Use:     "contact",
	Short:   "Send a contact message",
	Example: `  swiftstatic contact --name "Ann" --email ann@example.com --subject "Hello" --message "Hi there"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		form := &submission.ContactRequest{}
		form.Name, _ = flags.GetString("name")
		form.Email, _ = flags.GetString("email")
		form.Plan, _ = flags.GetString("plan")
		form.Subject, _ = flags.GetString("subject")
		form.Message, _ = flags.GetString("message")
		return runSubmit(cmd, form)
	},
}

func init() {
	bookCmd.Flags().String("name", "", "Your name")
	bookCmd.Flags().String("email", "", "Your email address")
	bookCmd.Flags().String("service", "", "Service you are interested in")
	bookCmd.Flags().String("date", "", "Preferred date (YYYY-MM-DD)")
	bookCmd.Flags().String("time", "", "Preferred time")
	bookCmd.Flags().String("message", "", "Anything we should know (optional)")

	contactCmd.Flags().String("name", "", "Your name")
	contactCmd.Flags().String("email", "", "Your email address")
	contactCmd.Flags().String("plan", "", "Plan you are interested in (optional)")
	contactCmd.Flags().String("subject", "", "Subject")
	contactCmd.Flags().String("message", "", "Message")
}

func runSubmit(cmd *cobra.Command, form submission.Form) error {
	flags := cmd.Flags()
	baseURL, _ := flags.GetString("url")
	mailto, _ := flags.GetString("mailto")
	site, _ := flags.GetString("site")
	timeout, _ := flags.GetDuration("timeout")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	term := cli.NewTerminal(cmd.OutOrStdout())
	c := client.New(baseURL,
		client.WithHTTPClient(&http.Client{Timeout: timeout}),
		client.WithMailto(mailto),
		client.WithSite(site),
		client.WithUI(term.UI()),
		client.WithToaster(client.NewToaster(term, client.ToastTTL)),
	)

	res := c.Submit(ctx, form)
	switch res.Outcome {
	case client.Invalid:
		return errInvalidForm
	case client.FallbackRequired:
		cmd.PrintErrf("Server did not confirm delivery (%s)\n", res.Reason)
	}
	return nil
}
