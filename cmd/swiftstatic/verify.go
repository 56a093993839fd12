package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/swiftstatic/swiftstatic/internal/config"
	"github.com/swiftstatic/swiftstatic/internal/mail"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var verifyMailCmd = &cobra.Command{
	Use:   "verify-mail",
	Short: "Check the configured email provider",
	Long: `Loads the server configuration from the environment (and .env files) and
checks that the email provider accepts the credentials. With --send-test a
short message is delivered to the notification address as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		sender, err := mail.New(cfg.Mail)
		if err != nil {
			return err
		}
		if mail.IsDisabled(sender) {
			return sender.Send(cmd.Context(), mail.Message{})
		}

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		s.Suffix = fmt.Sprintf(" Checking %s provider...", cfg.Mail.Provider)
		s.Start()
		if v, ok := sender.(mail.Verifier); ok {
			err = v.Verify(cmd.Context())
		}
		s.Stop()
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		cmd.Printf("✓ %s provider ready\n", cfg.Mail.Provider)

		sendTest, _ := cmd.Flags().GetBool("send-test")
		if !sendTest {
			return nil
		}

		to := cfg.Mail.Recipient()
		if to == "" {
			return errors.New("no recipient: set NOTIFY_EMAIL or EMAIL_USER")
		}
		from := cfg.Mail.User
		if from == "" {
			from = to
		}
		msg := mail.Message{
			FromName: cfg.SiteName + " Bot",
			From:     from,
			To:       to,
			Subject:  fmt.Sprintf("[%s] Mail check", cfg.SiteName),
			HTML:     "<p>Email delivery is working.</p>",
			Tag:      "verify",
		}
		if err := sender.Send(cmd.Context(), msg); err != nil {
			return err
		}
		cmd.Printf("✓ Test message sent to %s\n", to)
		return nil
	},
}

func init() {
	verifyMailCmd.Flags().Bool("send-test", false, "Also send a test message")
}
