package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"domain-recovery/internal/config"
	"domain-recovery/internal/database"
	"domain-recovery/internal/guide"
	"domain-recovery/internal/logger"
	"domain-recovery/internal/metrics"
	"domain-recovery/internal/services"
	"domain-recovery/internal/status"
	"domain-recovery/internal/valuation"
)

func addContextFlags(cmd *cobra.Command, gctx *guide.Context) {
	f := cmd.Flags()
	f.BoolVar(&gctx.LostCredentials, "lost-credentials", false, "the owner lost access to the registrar account")
	f.BoolVar(&gctx.StolenOrHijacked, "hijacked", false, "the domain was stolen or hijacked")
	f.BoolVar(&gctx.ContractualDispute, "dispute", false, "ownership is contested by a developer, agency or partner")
	f.BoolVar(&gctx.ContentRecoveryPriority, "content", false, "recovering the old site content matters most")
	f.BoolVar(&gctx.EmergencyMode, "emergency", false, "show only immediate and urgent steps")
}

// newAnalysisService wires the same pipeline as the server over an in-memory store
func newAnalysisService(cfg *config.Config, log *slog.Logger) (*services.AnalysisService, error) {
	db, err := database.InitDB(&config.DatabaseConfig{Type: "sqlite", Path: database.MemoryPath})
	if err != nil {
		return nil, err
	}
	valuer := valuation.NewEngine()
	collector := services.NewCollector(
		services.NewWhoisService(cfg.Whois, log),
		services.NewWebsiteProber(cfg.Probe),
		services.NewDNSProber(nil),
		services.NewArchiveClient(cfg.Probe),
		metrics.Nop{}, log)
	return services.NewAnalysisService(db, collector, status.NewAnalyzer(status.WithValuer(valuer)), metrics.Nop{}, log), nil
}

func (o *options) logger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger.Setup(cmd.ErrOrStderr(), cfg.Log.Level)
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		gctx    guide.Context
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "analyze <domain>",
		Short: "Look up a domain and print its state and recovery guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			svc, err := newAnalysisService(cfg, opts.logger(cmd, cfg))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			res, err := svc.Analyze(ctx, args[0], gctx)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), res, func(w io.Writer) { writeResult(w, res) })
		},
	}
	addContextFlags(cmd, &gctx)
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall lookup deadline")
	return cmd
}

func newEvaluateCmd(opts *options) *cobra.Command {
	var (
		file string
		gctx guide.Context
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Classify caller-supplied signals without any network lookups",
		Long: `evaluate reads a JSON document with the same shape as POST /api/v1/evaluate
(domain, registration, activity, seo, security, website) from --file, or from
stdin when --file is "-". Context flags are merged into the document's context.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var req services.EvaluateRequest
			if err := json.NewDecoder(r).Decode(&req); err != nil {
				return fmt.Errorf("decode signals: %w", err)
			}
			req.Context = mergeContext(req.Context, gctx)

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			svc, err := newAnalysisService(cfg, opts.logger(cmd, cfg))
			if err != nil {
				return err
			}
			res, err := svc.Evaluate(req)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), res, func(w io.Writer) { writeResult(w, res) })
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "signals document, - for stdin")
	addContextFlags(cmd, &gctx)
	return cmd
}

func mergeContext(a, b guide.Context) guide.Context {
	return guide.Context{
		LostCredentials:         a.LostCredentials || b.LostCredentials,
		StolenOrHijacked:        a.StolenOrHijacked || b.StolenOrHijacked,
		ContractualDispute:      a.ContractualDispute || b.ContractualDispute,
		ContentRecoveryPriority: a.ContentRecoveryPriority || b.ContentRecoveryPriority,
		EmergencyMode:           a.EmergencyMode || b.EmergencyMode,
	}
}
