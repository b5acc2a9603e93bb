package cmd

import (
	"fmt"
	"os"

	"teksttv-audit/pkg/report"
	"teksttv-audit/pkg/worddiff"

	"github.com/spf13/cobra"
)

func NewDiffCommand() *cobra.Command {
	var fromFiles bool
	var asHTML bool
	var color bool

	cmd := &cobra.Command{
		Use:   "diff AI_TEXT HUMAN_TEXT",
		Short: "在本地判定并对比两段文本",
		Long:  "按审计规则规范化两段文本，输出判定结果，AI 草稿被编辑过时输出词级对比，不连接任何数据库",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			aiText, humanText := args[0], args[1]
			if fromFiles {
				var err error
				if aiText, err = readText(args[0]); err != nil {
					return err
				}
				if humanText, err = readText(args[1]); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			assessment := worddiff.Assess(aiText, humanText)
			report.NewTableRenderer(out).RenderAssessment(assessment)
			if assessment.Diff == nil {
				return nil
			}

			formatter := worddiff.TextFormatter
			switch {
			case asHTML:
				formatter = worddiff.HTMLFormatter
			case color:
				formatter = worddiff.ANSIFormatter
			}
			before, after := assessment.Diff.Render(formatter)
			_, err := fmt.Fprintf(out, "Before: %s\nAfter:  %s\n", before, after)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fromFiles, "files", "f", false, "参数为文件路径")
	cmd.Flags().BoolVar(&asHTML, "html", false, "以仪表盘使用的 HTML 标记输出")
	cmd.Flags().BoolVar(&color, "color", false, "终端彩色输出")
	return cmd
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("读取文件失败: %w", err)
	}
	return string(data), nil
}
