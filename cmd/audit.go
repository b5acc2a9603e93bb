package cmd

import (
	"errors"

	"teksttv-audit/pkg/model"
	"teksttv-audit/pkg/report"
	"teksttv-audit/pkg/service"
	"teksttv-audit/pkg/signals"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errAllWithPeriod = errors.New("--all 与 --period 不能同时使用")

func NewAuditCommand() *cobra.Command {
	var configFilePath string
	var periodFlag string
	var outDir string
	var all bool
	var persist bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "生成月度审计报表",
		Long:  "读取指定月份上 Tekst TV 的文章，判定撰写来源并生成静态 HTML 报表，默认审计最近一个有文章的月份",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var period model.Period
			if periodFlag != "" {
				if all {
					return errAllWithPeriod
				}
				p, err := model.ParsePeriod(periodFlag)
				if err != nil {
					return err
				}
				period = p
			}

			cfg, restore, err := loadConfig(configFilePath)
			if err != nil {
				return err
			}
			defer restore()
			defer closeDatabases()

			if !cmd.Flags().Changed("out-dir") {
				outDir = cfg.AuditConfig.OutDir
			}

			ctx := signals.SetupSignalHandler()

			auditService, err := newAuditService(cfg, persist)
			if err != nil {
				return err
			}

			var reports []*service.Report
			if all {
				reports, err = auditService.AuditAll(ctx)
			} else {
				var r *service.Report
				r, err = auditService.Audit(ctx, period)
				reports = append(reports, r)
			}
			if err != nil {
				return err
			}

			htmlRenderer, err := report.NewHTMLRenderer()
			if err != nil {
				return err
			}
			tableRenderer := report.NewTableRenderer(cmd.OutOrStdout())
			for _, r := range reports {
				path, err := htmlRenderer.WriteFile(outDir, r)
				if err != nil {
					return err
				}
				zap.S().Infof("报表已生成: %s", path)
				tableRenderer.RenderCounts(r)

				if persist {
					if err := auditService.Persist(ctx, r); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	addConfigFlag(cmd, &configFilePath)
	cmd.Flags().StringVarP(&periodFlag, "period", "p", "", "审计月份，格式 YYYY-MM，默认最近一个月份")
	cmd.Flags().BoolVar(&all, "all", false, "审计所有有文章的月份")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "报表输出目录，默认取配置 audit.outDir")
	cmd.Flags().BoolVar(&persist, "persist", false, "将结果保存到 DuckDB")
	return cmd
}
