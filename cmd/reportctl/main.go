// Command reportctl parses studio report files from the command line and
// prints the normalized result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"studiolens/internal/analytics"
	"studiolens/internal/reportparse"
)

var (
	pretty      bool
	withMetrics bool
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "reportctl",
		Short:         "Normalize studio spreadsheet reports to JSON",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().BoolVar(&withMetrics, "metrics", false, "Include summary metrics in the output")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "payroll [report.xlsx]",
		Short: "Parse a payroll/attendance workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runPayroll,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "first-visit [report.xlsx]",
		Short: "Parse a first-visit client report",
		Args:  cobra.ExactArgs(1),
		RunE:  runFirstVisit,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPayroll(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer file.Close()

	parser := reportparse.NewPayrollParser(cliLogger())
	report, err := parser.Parse(context.Background(), file, args[0])
	if err != nil {
		return err
	}

	out := map[string]interface{}{
		"date_range":   report.DateRange,
		"payroll_data": report.Records,
	}
	if withMetrics {
		out["metrics"] = analytics.CalculateMetrics(report.Records)
		out["earnings_by_instructor"] = analytics.EarningsByInstructor(report.Records)
		out["class_distribution"] = analytics.ClassDistribution(report.Records)
	}
	return writeJSON(out)
}

func runFirstVisit(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer file.Close()

	parser := reportparse.NewFirstVisitParser(cliLogger())
	report, err := parser.Parse(context.Background(), file)
	if err != nil {
		return err
	}

	out := map[string]interface{}{
		"first_visit_data":   report.Records,
		"date_range":         report.DateRange,
		"service_categories": report.ServiceCategories,
		"staff_list":         report.StaffList,
		"referral_types":     report.ReferralTypes,
	}
	if withMetrics {
		out["metrics"] = analytics.CalculateFirstVisitMetrics(report.Records)
	}
	return writeJSON(out)
}

// cliLogger sends diagnostics to stderr so stdout stays clean JSON.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
