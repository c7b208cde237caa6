package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/mail"
)

type mailFlags struct {
	subject  string
	body     string
	bodyFile string
	htmlFile string
	attach   []string
	embed    []string
	to       []string
	cc       []string
}

func newMailCmd() *cobra.Command {
	flags := &mailFlags{}

	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Send a report mail through the configured SMTP server",
		Long: `Send a report mail. Connection settings come from the mail section of the
config file or the MAIL_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMail(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.subject, "subject", "", "Subject (default from config)")
	cmd.Flags().StringVar(&flags.body, "body", "", "Plain-text body")
	cmd.Flags().StringVar(&flags.bodyFile, "body-file", "", "Read the plain-text body from a file")
	cmd.Flags().StringVar(&flags.htmlFile, "html", "", "Read an HTML body from a file")
	cmd.Flags().StringSliceVar(&flags.attach, "attach", nil, "Files to attach")
	cmd.Flags().StringSliceVar(&flags.embed, "embed", nil, "Images to embed, referenced as cid:<file name>")
	cmd.Flags().StringSliceVar(&flags.to, "to", nil, "Recipients (default from config)")
	cmd.Flags().StringSliceVar(&flags.cc, "cc", nil, "Copy recipients (default from config)")

	return cmd
}

func runMail(cmd *cobra.Command, flags *mailFlags) error {
	mc := cfg.Mail
	if len(flags.to) > 0 {
		mc.To = flags.to
	}
	if len(flags.cc) > 0 {
		mc.Cc = flags.cc
	}
	sender, err := mail.NewSMTPSender(mc)
	if err != nil {
		return err
	}

	msg := mail.Message{
		Subject:     flags.subject,
		Body:        flags.body,
		Attachments: flags.attach,
		Embeds:      flags.embed,
	}
	if flags.bodyFile != "" {
		data, err := os.ReadFile(flags.bodyFile)
		if err != nil {
			return err
		}
		msg.Body = string(data)
	}
	if flags.htmlFile != "" {
		data, err := os.ReadFile(flags.htmlFile)
		if err != nil {
			return err
		}
		msg.HTML = string(data)
	}

	return sender.Send(cmd.Context(), msg)
}
