package cmd

import (
	"teksttv-audit/pkg/model"
	"teksttv-audit/pkg/report"
	"teksttv-audit/pkg/service"
	"teksttv-audit/pkg/signals"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewHistoryCommand() *cobra.Command {
	var configFilePath string
	var periodFlag string
	var outDir string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "查看 DuckDB 中保存的审计汇总",
		Long:  "按月汇总 DuckDB 中保存的审计结果，指定 --period 时用保存的结果重新生成该月份的 HTML 报表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, restore, err := loadConfig(configFilePath)
			if err != nil {
				return err
			}
			defer restore()
			defer closeDatabases()

			ctx := signals.SetupSignalHandler()
			snapshots, err := openSnapshots(cfg)
			if err != nil {
				return err
			}
			auditService := service.NewAuditService(nil, snapshots, cfg.AuditConfig.Workers)

			if periodFlag != "" {
				period, err := model.ParsePeriod(periodFlag)
				if err != nil {
					return err
				}
				restored, err := auditService.Restore(ctx, period)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("out-dir") {
					outDir = cfg.AuditConfig.OutDir
				}
				htmlRenderer, err := report.NewHTMLRenderer()
				if err != nil {
					return err
				}
				path, err := htmlRenderer.WriteFile(outDir, restored)
				if err != nil {
					return err
				}
				zap.S().Infof("报表已从快照重新生成: %s", path)
				report.NewTableRenderer(cmd.OutOrStdout()).RenderCounts(restored)
				return nil
			}

			counts, err := auditService.History(ctx)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				zap.S().Info("尚未保存任何审计结果，使用 'audit --persist' 保存")
				return nil
			}
			report.NewTableRenderer(cmd.OutOrStdout()).RenderHistory(counts)

			total, err := snapshots.Count(ctx)
			if err != nil {
				zap.S().Warnf("获取统计信息失败: %s", err.Error())
			} else {
				zap.S().Infof("DuckDB 中已保存的审计记录数量: %d", total)
			}
			return nil
		},
	}

	addConfigFlag(cmd, &configFilePath)
	cmd.Flags().StringVarP(&periodFlag, "period", "p", "", "用保存的结果重新生成该月份的报表，格式 YYYY-MM")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "报表输出目录，默认取配置 audit.outDir")
	return cmd
}
