package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/measures/internal/logger"
	"github.com/mesh-intelligence/measures/internal/sqlite"
	"github.com/mesh-intelligence/measures/pkg/types"
	"github.com/mesh-intelligence/measures/pkg/units"
)

// attachHistory attaches a history backend to the resolved data directory.
// The caller must Detach it.
func (a *app) attachHistory() (*sqlite.Backend, error) {
	h := sqlite.NewBackend()
	if err := h.Attach(a.cfg); err != nil {
		return nil, fmt.Errorf("attach history: %w", err)
	}
	return h, nil
}

// record stores a successful conversion when history is enabled. Failures
// are logged and reported as a warning; the conversion itself still succeeds.
func (a *app) record(cmd *cobra.Command, c types.Conversion) {
	if !a.cfg.History {
		return
	}
	if math.IsInf(c.Result, 0) || math.IsNaN(c.Result) {
		logger.L().Debug("history.skipped", "reason", "non-finite result", "category", c.Category)
		return
	}
	h, err := a.attachHistory()
	if err != nil {
		logger.L().Warn("history.attach_failed", "error", err)
		warn(cmd.ErrOrStderr(), "history not recorded: %v", err)
		return
	}
	defer h.Detach()

	id, err := h.Record(c)
	if err != nil {
		logger.L().Warn("history.record_failed", "error", err)
		warn(cmd.ErrOrStderr(), "history not recorded: %v", err)
		return
	}
	logger.L().Debug("history.recorded", "conversion_id", id)
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit    int
		category string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversions",
		Long:  "Show successful conversions recorded in the data directory, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.attachHistory()
			if err != nil {
				return sysErr(err)
			}
			defer h.Detach()

			entries, err := h.List(types.HistoryFilter{Category: category, Limit: limit})
			if err != nil {
				return sysErr(fmt.Errorf("list history: %w", err))
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No conversions recorded.")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "WHEN\tMODE\tCATEGORY\tCONVERSION")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					e.CreatedAt.Local().Format(time.DateTime),
					e.Mode,
					e.Category,
					units.FormatResult(e.Amount, e.FromUnit, e.Result, e.ToUnit, a.cfg.Precision),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries (0 for all)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show conversions in this category")
	cmd.AddCommand(newHistoryClearCmd(a))
	return cmd
}

func newHistoryClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.attachHistory()
			if err != nil {
				return sysErr(err)
			}
			defer h.Detach()

			if err := h.Clear(); err != nil {
				return sysErr(fmt.Errorf("clear history: %w", err))
			}
			logger.L().Info("history.cleared")
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}
