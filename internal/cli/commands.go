package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/wegive/internal/app"
	"github.com/Makepad-fr/wegive/internal/config"
	"github.com/Makepad-fr/wegive/internal/estimate"
	"github.com/Makepad-fr/wegive/internal/model"
	"github.com/Makepad-fr/wegive/internal/tui"
	"github.com/Makepad-fr/wegive/internal/ui"
)

func newUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive app (default)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runUI(cmd.Context())
		},
	}
}

func (e *env) runUI(ctx context.Context) error {
	sink, err := e.reportSink(ctx, "", e.cfg.Report.S3.Bucket != "")
	if err != nil {
		return err
	}
	s, err := e.open(ctx, sink)
	if err != nil {
		return err
	}
	defer s.Close()
	return tui.Run(ctx, s.ctl, tui.MapOptions{Center: e.cfg.Map.Center, Zoom: e.cfg.Map.Zoom})
}

func newSubmitCmd(e *env) *cobra.Command {
	var d model.Draft
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "List surplus food for pickup",
		Example: `  wegive submit --description "Vegetable curry" --quantity 30 \
    --expiry 2026-10-19 --address "1 Raffles Place" --donor "Grand Hotel"`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := e.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			out, err := s.ctl.Dispatch(cmd.Context(), app.Submit(d))
			if err != nil {
				return err
			}
			ui.OK(e.out, out.Notice.Text)
			fmt.Fprintf(e.out, "%s %s\n", ui.C(ui.Dim, "id"), out.Item.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&d.Description, "description", "", "what is being donated")
	f.StringVar(&d.Quantity, "quantity", "", "number of units or portions")
	f.StringVar(&d.ExpiryDate, "expiry", "", "best before date, YYYY-MM-DD")
	f.StringVar(&d.PickupAddress, "address", "", "pickup address")
	f.StringVar(&d.DonorName, "donor", "", "donor name")
	return cmd
}

func newListCmd(e *env) *cobra.Command {
	var (
		group  bool
		status string
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Show the marketplace",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var only model.Status
			if status != "" {
				st, err := model.ParseStatus(status)
				if err != nil {
					return usageError{err}
				}
				only = st
			}
			s, err := e.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()
			ui.Panel(e.out, listLines(s.ctl.Items(), group, only))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group donations by status")
	cmd.Flags().StringVar(&status, "status", "", "only show Available, Claimed or Collected donations")
	return cmd
}

func newAcceptCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <id|index>",
		Short: "Claim an available donation",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.advance(cmd.Context(), args[0], app.Accept)
		},
	}
}

func newCollectCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "collect <id|index>",
		Short: "Mark a claimed donation as collected",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.advance(cmd.Context(), args[0], app.Collect)
		},
	}
}

func (e *env) advance(ctx context.Context, ref string, command func(string) app.Command) error {
	s, err := e.open(ctx, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.ctl.Dispatch(ctx, command(resolveID(s.ctl.Items(), ref)))
	if err != nil {
		return err
	}
	ui.OK(e.out, out.Notice.Text)
	return nil
}

// resolveID accepts an item id or its 1-based position as shown by ls.
func resolveID(items []model.SurplusItem, ref string) string {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return items[n-1].ID
	}
	return ref
}

func newEstimateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <planned> <actual>",
		Short: "Estimate the food surplus of an event",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := estimate.EstimateText(args[0], args[1])
			if !ok {
				fmt.Fprintln(e.errOut, ui.C(ui.Dim, "No estimate: planned must be positive and not below actual attendance."))
				return nil
			}
			fmt.Fprintln(e.out, r.String())
			return nil
		},
	}
}

func newReportCmd(e *env) *cobra.Command {
	var (
		dir  string
		toS3 bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the impact report as CSV",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sink, err := e.reportSink(cmd.Context(), dir, toS3)
			if err != nil {
				return err
			}
			s, err := e.open(cmd.Context(), sink)
			if err != nil {
				return err
			}
			defer s.Close()

			out, err := s.ctl.Dispatch(cmd.Context(), app.Export())
			if err != nil {
				return err
			}
			ui.OK(e.out, out.Notice.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "out", "", "directory to write the report to (default report.dir)")
	cmd.Flags().BoolVar(&toS3, "s3", false, "upload to the configured S3 bucket instead")
	return cmd
}

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := config.Show(e.cfg)
			if err != nil {
				return err
			}
			_, err = e.out.Write(b)
			return err
		},
	})
	return cmd
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
