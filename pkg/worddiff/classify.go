package worddiff

// Classification 单条内容的撰写来源判定
type Classification string

const (
	FullyHuman         Classification = "fully_human_written"
	AIUneditedVerbatim Classification = "ai_written_not_edited"
	AIEdited           Classification = "ai_written_edited"
)

// noDraft CMS 将字符串 "0" 当作空值
const noDraft = "0"

// Classifications 按仪表盘展示顺序排列
var Classifications = []Classification{FullyHuman, AIUneditedVerbatim, AIEdited}

// Label 返回展示用名称
func (c Classification) Label() string {
	switch c {
	case FullyHuman:
		return "Fully Human Written"
	case AIUneditedVerbatim:
		return "AI Written, Not Edited"
	case AIEdited:
		return "AI Written, Edited"
	default:
		return string(c)
	}
}

// Classify 比较规范化后的 AI 草稿与人工定稿
// 草稿为空或为 "0" 时视为没有 AI 草稿（CMS 的 empty 语义）
// 判定为逐字节相等，空白或标点的差异也会算作编辑
func Classify(aiText, humanText string) Classification {
	return classify(Normalize(aiText), Normalize(humanText))
}

func classify(ai, human string) Classification {
	switch {
	case ai == "" || ai == noDraft:
		return FullyHuman
	case ai == human:
		return AIUneditedVerbatim
	default:
		return AIEdited
	}
}

// Assessment 单条内容的判定结果，只有 AIEdited 时才计算 Diff
type Assessment struct {
	Classification Classification `json:"classification"`
	AIText         string         `json:"ai_text"`
	HumanText      string         `json:"human_text"`
	Diff           *AlignedDiff   `json:"diff,omitempty"`
}

// Assess 规范化、判定并在需要时计算词级对比
func Assess(aiText, humanText string) *Assessment {
	a := &Assessment{
		AIText:    Normalize(aiText),
		HumanText: Normalize(humanText),
	}
	a.Classification = classify(a.AIText, a.HumanText)
	if a.Classification == AIEdited {
		a.Diff = Diff(a.AIText, a.HumanText)
	}
	return a
}
