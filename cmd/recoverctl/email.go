package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"domain-recovery/internal/domain"
	"domain-recovery/internal/guide"
)

func newEmailCmd(opts *options) *cobra.Command {
	var registrar string
	cmd := &cobra.Command{
		Use:   "email <template> <domain>",
		Short: "Render a registrar email template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.Normalize(args[1])
			if err != nil {
				return err
			}
			e, err := guide.RenderEmail(args[0], d, registrar)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), e, func(w io.Writer) {
				fmt.Fprintf(w, "Subject: %s\n\n%s\n", e.Subject, e.Body)
			})
		},
	}
	cmd.Flags().StringVar(&registrar, "registrar", "", "registrar name used in the greeting")
	return cmd
}

func newTemplatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the email template keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := guide.TemplateKeys()
			return opts.print(cmd.OutOrStdout(), keys, func(w io.Writer) {
				for _, k := range keys {
					fmt.Fprintln(w, k)
				}
			})
		},
	}
}
