package worddiff

import "strings"

// PrefixSeparator 分隔标题前缀与正文
const PrefixSeparator = " - "

// trimCutset 与 CMS 保存文本时的 trim 规则保持一致
const trimCutset = " \t\n\r\x00\x0B"

// Tokenize 按 trimCutset 去除首尾后按空白切分文本，返回非空词序列
// 空白只包含 ASCII 空白字符，不间断空格属于词的一部分
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.Trim(text, trimCutset), isSpace)
}

// Normalize 去除首尾空白，并丢弃第一个 " - " 之前的前缀（含分隔符）
func Normalize(text string) string {
	text = strings.Trim(text, trimCutset)
	if _, body, found := strings.Cut(text, PrefixSeparator); found {
		return strings.Trim(body, trimCutset)
	}
	return text
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
