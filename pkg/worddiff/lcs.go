package worddiff

// Table 保存最长公共子序列长度，cell(i,j) 为 before[i:] 与 after[j:] 的 LCS 长度
type Table [][]int

// NewTable 自底向上构建 LCS 表，最后一行和最后一列为 0
func NewTable(before, after []string) Table {
	m, n := len(before), len(after)
	t := make(Table, m+1)
	for i := range t {
		t[i] = make([]int, n+1)
	}

	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if before[i] == after[j] {
				t[i][j] = t[i+1][j+1] + 1
			} else {
				t[i][j] = max(t[i+1][j], t[i][j+1])
			}
		}
	}
	return t
}

// Len 返回整体 LCS 长度
func (t Table) Len() int {
	return t[0][0]
}

// LCS 返回 before 与 after 的一个最长公共子序列
// 两个方向长度相同时优先消耗 before，这决定了歧义情况下哪些词被标记为删除或插入
func LCS(before, after []string) []string {
	t := NewTable(before, after)
	lcs := make([]string, 0, t.Len())

	i, j := 0, 0
	for i < len(before) && j < len(after) {
		switch {
		case before[i] == after[j]:
			lcs = append(lcs, before[i])
			i++
			j++
		case t[i+1][j] >= t[i][j+1]:
			i++
		default:
			j++
		}
	}
	return lcs
}
