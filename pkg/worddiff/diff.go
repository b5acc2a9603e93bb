package worddiff

import "strings"

// Kind 标记一个词在对比结果中的状态
type Kind int

const (
	Unchanged Kind = iota
	Deleted        // 仅出现在 before
	Inserted       // 仅出现在 after
)

func (k Kind) String() string {
	switch k {
	case Deleted:
		return "deleted"
	case Inserted:
		return "inserted"
	default:
		return "unchanged"
	}
}

// Span 带标记的词
type Span struct {
	Kind  Kind   `json:"kind"`
	Token string `json:"token"`
}

// AlignedDiff 两侧对齐的对比结果
// Before 只包含 unchanged 与 deleted，After 只包含 unchanged 与 inserted
type AlignedDiff struct {
	Before []Span `json:"before"`
	After  []Span `json:"after"`
}

// Stats 词级别统计
type Stats struct {
	Unchanged int `json:"unchanged"`
	Deleted   int `json:"deleted"`
	Inserted  int `json:"inserted"`
}

// Diff 对两段文本做词级别对比
func Diff(beforeText, afterText string) *AlignedDiff {
	return Compute(Tokenize(beforeText), Tokenize(afterText))
}

// Compute 按 LCS 同时遍历 before、after 与 LCS 三个游标生成对齐结果
func Compute(before, after []string) *AlignedDiff {
	lcs := LCS(before, after)
	d := &AlignedDiff{
		Before: make([]Span, 0, len(before)),
		After:  make([]Span, 0, len(after)),
	}

	i, j, k := 0, 0, 0
	for i < len(before) || j < len(after) {
		if k < len(lcs) && i < len(before) && j < len(after) && before[i] == lcs[k] && after[j] == lcs[k] {
			d.Before = append(d.Before, Span{Kind: Unchanged, Token: before[i]})
			d.After = append(d.After, Span{Kind: Unchanged, Token: after[j]})
			i++
			j++
			k++
			continue
		}

		if i < len(before) && (k >= len(lcs) || before[i] != lcs[k]) {
			d.Before = append(d.Before, Span{Kind: Deleted, Token: before[i]})
			i++
		}
		if j < len(after) && (k >= len(lcs) || after[j] != lcs[k]) {
			d.After = append(d.After, Span{Kind: Inserted, Token: after[j]})
			j++
		}
	}
	return d
}

// Stats 统计各类词的数量，unchanged 只按 before 一侧计数
func (d *AlignedDiff) Stats() Stats {
	var s Stats
	for _, span := range d.Before {
		if span.Kind == Deleted {
			s.Deleted++
		} else {
			s.Unchanged++
		}
	}
	for _, span := range d.After {
		if span.Kind == Inserted {
			s.Inserted++
		}
	}
	return s
}

// Render 使用指定格式输出 before 与 after
func (d *AlignedDiff) Render(f Formatter) (before, after string) {
	return f.Render(d.Before), f.Render(d.After)
}

// Tokens 提取指定类型的词，不传 kinds 时返回全部
func Tokens(spans []Span, kinds ...Kind) []string {
	tokens := make([]string, 0, len(spans))
	for _, span := range spans {
		if len(kinds) == 0 || containsKind(kinds, span.Kind) {
			tokens = append(tokens, span.Token)
		}
	}
	return tokens
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Formatter 将词渲染为文本，Escape 作用于每个词，Deleted/Inserted 包裹已转义的词
type Formatter struct {
	Escape   func(string) string
	Deleted  func(string) string
	Inserted func(string) string
}

// Render 逐词转义、标记后以单个空格连接
func (f Formatter) Render(spans []Span) string {
	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		token := span.Token
		if f.Escape != nil {
			token = f.Escape(token)
		}
		switch {
		case span.Kind == Deleted && f.Deleted != nil:
			token = f.Deleted(token)
		case span.Kind == Inserted && f.Inserted != nil:
			token = f.Inserted(token)
		}
		parts = append(parts, token)
	}
	return strings.Join(parts, " ")
}
