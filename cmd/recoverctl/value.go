package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"domain-recovery/internal/classifier"
	"domain-recovery/internal/domain"
	"domain-recovery/internal/valuation"
)

func newValueCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "value <domain>",
		Short: "Estimate a name's market value from the name alone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.Normalize(args[0])
			if err != nil {
				return err
			}
			v := valuation.NewEngine().Estimate(d, valuation.Inputs{})
			return opts.print(cmd.OutOrStdout(), v, func(w io.Writer) {
				fmt.Fprintf(w, "%s: %s\n", v.Domain, v.Summary())
				for _, f := range v.Factors {
					fmt.Fprintf(w, "  %-14s %5.1f  %s\n", f.Name, f.Score, f.Explanation)
				}
				for _, c := range v.Comparables {
					fmt.Fprintf(w, "  comparable %s sold for %s\n", c.Domain, valuation.FormatUSD(c.Price))
				}
			})
		},
	}
}

type classifyOutput struct {
	Classification classifier.Classification    `json:"classification"`
	Brandability   classifier.BrandabilityScore `json:"brandability"`
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <domain>",
		Short: "Print a name's tier and brandability breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.Normalize(args[0])
			if err != nil {
				return err
			}
			out := classifyOutput{
				Classification: classifier.Classify(d, classifier.Signals{}),
				Brandability:   classifier.Brandability(domain.Name(d)),
			}
			return opts.print(cmd.OutOrStdout(), out, func(w io.Writer) {
				c := out.Classification
				fmt.Fprintf(w, "%s: tier %d (%s), %s to %s\n", c.Domain, c.Tier, c.Category,
					valuation.FormatUSD(c.Value.Min), valuation.FormatUSD(c.Value.Max))
				for _, r := range c.Reasons {
					fmt.Fprintf(w, "  - %s\n", r)
				}
				fmt.Fprintf(w, "  brandability %.1f\n", out.Brandability.Total)
			})
		},
	}
}
