package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ochairo/distcheck/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/distcheck/internal/domain-orchestrators"
	"github.com/ochairo/distcheck/internal/domain/interfaces"
	igateways "github.com/ochairo/distcheck/internal/domain/interfaces/gateways"
	"github.com/ochairo/distcheck/internal/external-adapters/yaml"
)

var (
	scanForever  bool
	scanDebug    bool
	scanInterval time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan [project...]",
	Short: "Run a verification pass over the distribution tree",
	Long: `Scan runs one verification pass over every project in the distribution
tree, or over the named projects only. With --forever the pass repeats
after the configured interval. With --debug notifications are printed
instead of mailed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := yaml.NewConfigLoader().Load(configPath)
		if err != nil {
			return err
		}

		logger := &interfaces.ConsoleLogger{Out: cmd.ErrOrStderr(), Quiet: quiet}

		enumerator := gateways.NewProjectEnumerator(cfg.DistDir)
		projects, err := enumerator.List()
		if err != nil {
			return err
		}
		projects = enumerator.Restrict(projects, args)
		if len(projects) == 0 {
			return fmt.Errorf("no projects to scan")
		}

		var notifier igateways.Notifier
		if scanDebug {
			notifier = &gateways.ConsoleNotifier{Out: cmd.OutOrStdout()}
		} else {
			var mailMap *gateways.MailMapGateway
			if cfg.Notify.MailMapURL != "" {
				mailMap = gateways.NewMailMapGateway(cfg.Notify.MailMapURL)
			}
			notifier = gateways.NewMailNotifier(cfg.Notify, mailMap, logger)
		}

		orchestrator := orchestrators.NewScanOrchestrator(cfg, notifier, logger)

		interval := scanInterval
		if interval == 0 {
			interval = time.Duration(cfg.IntervalSeconds) * time.Second
		}

		ctx := cmd.Context()
		for {
			orchestrator.Run(ctx, projects)
			if !scanForever {
				return nil
			}
			logger.Info("Sleeping until next pass", interfaces.F("interval", interval))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanForever, "forever", false, "Repeat the scan after each interval")
	scanCmd.Flags().BoolVar(&scanDebug, "debug", false, "Print notifications instead of sending email")
	scanCmd.Flags().DurationVar(&scanInterval, "interval", 0, "Override the configured sleep between passes")
	rootCmd.AddCommand(scanCmd)
}
