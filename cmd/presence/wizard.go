package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"digital-presence/platform-backend/internal/dashboard"
	"digital-presence/platform-backend/internal/export"
	"digital-presence/platform-backend/internal/wizard"
)

func loadProfile(path string) (*wizard.BusinessProfile, error) {
	profile, err := newFileStore(path).Load()
	if err != nil {
		return nil, codeError(exitUsage, "%s", err)
	}
	return profile, nil
}

// writeAndClose renders into wc and closes it; a failed close is reported,
// since that is where a failed flush to disk surfaces.
func writeAndClose(wc io.WriteCloser, render func(io.Writer) error) error {
	if err := render(wc); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func (a *app) progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <profile.json>",
		Short: "Show per-step wizard status and percent complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), wizard.ComputeProgress(profile))
		},
	}
}

func (a *app) actionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions <profile.json>",
		Short: "List recommended next actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), wizard.ComputeActions(profile))
		},
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "dashboard <profile.json>",
		Short: "Render the full dashboard view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Export.DefaultFormat
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return codeError(exitUsage, "%s", err)
			}

			profile, err := loadProfile(args[0])
			if err != nil {
				return err
			}
			view := dashboard.BuildView(profile)

			opts := export.Options{Title: a.cfg.Export.Title, GeneratedAt: time.Now()}
			render := func(w io.Writer) error {
				return export.Write(w, f, view, opts)
			}

			if out == "" {
				return render(cmd.OutOrStdout())
			}

			file, err := os.Create(out)
			if err != nil {
				return codeError(exitUsage, "failed to create output file: %s", err)
			}
			if err := writeAndClose(file, render); err != nil {
				a.logger.Error("Failed to export dashboard",
					zap.String("format", string(f)),
					zap.String("path", out),
					zap.Error(err))
				return err
			}
			a.logger.Info("Dashboard exported",
				zap.String("format", string(f)),
				zap.String("content_type", f.ContentType()),
				zap.String("path", out))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, csv, xlsx or pdf (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "Write output to file instead of stdout")
	return cmd
}

func (a *app) markActionCmd() *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "mark-action <profile.json> <action-id>",
		Short: "Mark a recommended action as done (or not done with --undo)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newFileStore(args[0])
			profile, err := store.Load()
			if err != nil {
				return codeError(exitUsage, "%s", err)
			}

			svc := dashboard.NewService(store, a.logger)
			view, err := svc.SetActionCompleted(cmd.Context(), profile.ID, args[1], !undo)
			switch {
			case errors.Is(err, dashboard.ErrUnknownAction):
				return codeError(exitNotFound, "%s", err)
			case err != nil:
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the action as not done")
	return cmd
}

func (a *app) transitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transitions <before.json> <after.json>",
		Short: "Show wizard step status changes between two snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := loadProfile(args[0])
			if err != nil {
				return err
			}
			after, err := loadProfile(args[1])
			if err != nil {
				return err
			}

			svc := dashboard.NewService(nil, a.logger)
			return printJSON(cmd.OutOrStdout(), svc.Transitions(before, after))
		},
	}
}
