package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"domain-recovery/internal/services"
)

// print writes v as indented JSON, or calls text for the human format
func (o *options) print(w io.Writer, v any, text func(io.Writer)) error {
	if o.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func writeResult(w io.Writer, res *services.Result) {
	r := res.Report
	g := res.Guide
	fmt.Fprintf(w, "%s: %s\n", res.Domain, r.State)
	fmt.Fprintf(w, "  %s\n", g.Headline)
	fmt.Fprintf(w, "  difficulty %s, success rate %d%%, recovery score %d\n", r.Difficulty, r.SuccessRate, res.RecoveryScore)
	if r.ExpiryDate != nil {
		fmt.Fprintf(w, "  expires %s (%s)\n", r.ExpiryDate.Format("2006-01-02"), humanize.Time(*r.ExpiryDate))
	}
	if r.Registrar != nil && r.Registrar.Name != "" {
		fmt.Fprintf(w, "  registrar %s\n", r.Registrar.Name)
	}
	if r.Valuation != nil {
		fmt.Fprintf(w, "  %s\n", r.Valuation.Summary())
	}
	if len(res.Degraded) > 0 {
		fmt.Fprintf(w, "  unavailable sources: %s\n", strings.Join(res.Degraded, ", "))
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  ! %s\n", warn)
	}

	fmt.Fprintf(w, "\n%s\n", g.Summary)
	for _, s := range g.Steps {
		fmt.Fprintf(w, "%2d. [%s] %s (%s)\n", s.Number, s.Urgency, s.Title, s.EstimatedTime)
		if s.Description != "" {
			fmt.Fprintf(w, "    %s\n", s.Description)
		}
	}
	if g.CostSummary != "" || g.TimeSummary != "" {
		fmt.Fprintf(w, "\ncost: %s\ntime: %s\n", g.CostSummary, g.TimeSummary)
	}
}
