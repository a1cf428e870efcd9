package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pacebudget/backend/internal/engine"
	"github.com/pacebudget/backend/internal/insight"
	"github.com/pacebudget/backend/internal/models"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/tuning"
	"github.com/pacebudget/backend/internal/types"
	"github.com/spf13/cobra"
)

var (
	flagMonth string
	flagNow   string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard of a period as JSON",
	Long:  "Print the dashboard of a period as JSON. Without --month, the period containing --now is used.",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVarP(&flagMonth, "month", "m", "", "Key of the period, e.g. 2024-06")
	summaryCmd.Flags().StringVar(&flagNow, "now", "", "Point in time to evaluate the period at, RFC3339. Defaults to the current time")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	if flagNow != "" {
		parsed, err := time.Parse(time.RFC3339, flagNow)
		if err != nil {
			return fmt.Errorf("--now must be an RFC3339 timestamp: %w", err)
		}
		now = parsed
	}

	table, err := tuning.Load(cfg.TuningFile)
	if err != nil {
		return err
	}

	if err := connect(); err != nil {
		return err
	}
	defer disconnect()

	settings, err := models.GetSettings()
	if err != nil {
		return err
	}

	month := period.MonthKeyFromDate(now, settings.StartDay)
	if flagMonth != "" {
		month, err = types.ParseMonth(flagMonth)
		if err != nil {
			return err
		}
	}

	p, err := models.GetOrCreatePeriod(month, settings)
	if err != nil {
		return err
	}

	transactions, err := models.AllTransactions()
	if err != nil {
		return err
	}

	dashboard := engine.New(table, 1).Dashboard(engine.Inputs{
		Transactions: transactions,
		Revision:     1,
		Month:        p.Month,
		Source:       p.Source(settings),
		Income:       p.Income,
		Split:        p.PercentSplit.Amounts(),
		Now:          now,
	}).Rendered(insight.NewPrinter(settings.Tag(), settings.Unit()))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dashboard)
}
