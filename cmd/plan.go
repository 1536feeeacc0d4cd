package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/podiumhq/podium/app"
	"github.com/podiumhq/podium/config"
	"github.com/podiumhq/podium/infra/logger"
)

var (
	seasonPath string
	outFormat  string
	outPath    string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the full pipeline and export the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(outFormat)
	},
}

func init() {
	planCmd.Flags().StringVarP(&outFormat, "format", "f", "json", "output format: json, csv, programme-csv or timeline-csv")
	for _, c := range []*cobra.Command{planCmd, allocateCmd, timelineCmd} {
		c.Flags().StringVarP(&seasonPath, "season", "s", "season.yaml", "season file with works and rehearsals")
		c.Flags().StringVarP(&outPath, "out", "o", "", "output file, stdout when empty")
		rootCmd.AddCommand(c)
	}
}

// runExport loads the configuration and season, runs the pipeline and
// writes the result in the given format.
func runExport(format string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	go svc.ServeMetrics(ctx)

	res, err := svc.Plan(seasonPath)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" && outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return svc.Export(out, res, format)
}
