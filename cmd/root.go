package cmd

import (
	"teksttv-audit/pkg/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "teksttv-audit",
		Short: "Tekst TV 内容撰写来源审计工具",
		Long:  "对比 Tekst TV 文章的 AI 草稿与人工定稿，按月生成审计报表",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableNoDescFlag:   true,
			DisableDescriptions: true,
			HiddenDefaultCmd:    true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(NewAuditCommand())
	rootCmd.AddCommand(NewPeriodsCommand())
	rootCmd.AddCommand(NewDiffCommand())
	rootCmd.AddCommand(NewHistoryCommand())

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		zap.S().Info("使用 'audit' 子命令生成审计报表")
		_ = cmd.Help()
	}
	rootCmd.Version = util.GetVersion().Version
	return rootCmd
}
