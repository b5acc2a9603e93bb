package cmd

import (
	"teksttv-audit/pkg/report"
	"teksttv-audit/pkg/signals"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewPeriodsCommand() *cobra.Command {
	var configFilePath string

	cmd := &cobra.Command{
		Use:   "periods",
		Short: "列出可审计的月份",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, restore, err := loadConfig(configFilePath)
			if err != nil {
				return err
			}
			defer restore()
			defer closeDatabases()

			ctx := signals.SetupSignalHandler()
			auditService, err := newAuditService(cfg, false)
			if err != nil {
				return err
			}

			periods, err := auditService.Periods(ctx)
			if err != nil {
				return err
			}
			if len(periods) == 0 {
				zap.S().Info("没有可审计的月份")
				return nil
			}
			report.NewTableRenderer(cmd.OutOrStdout()).RenderPeriods(periods)
			return nil
		},
	}

	addConfigFlag(cmd, &configFilePath)
	return cmd
}
