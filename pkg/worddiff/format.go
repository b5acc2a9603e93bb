package worddiff

import "html"

// HTMLFormatter 用于仪表盘：删除的词划线标红，插入的词绿色高亮
var HTMLFormatter = Formatter{
	Escape: html.EscapeString,
	Deleted: func(s string) string {
		return "<del class='text-red-500 line-through'>" + s + "</del>"
	},
	Inserted: func(s string) string {
		return "<ins class='text-green-600 bg-green-100'>" + s + "</ins>"
	},
}

// TextFormatter 用于终端输出，不做转义
var TextFormatter = Formatter{
	Deleted: func(s string) string {
		return "[-" + s + "-]"
	},
	Inserted: func(s string) string {
		return "{+" + s + "+}"
	},
}

// ANSIFormatter 终端彩色输出
var ANSIFormatter = Formatter{
	Deleted: func(s string) string {
		return wrapANSI("9;31", s)
	},
	Inserted: func(s string) string {
		return wrapANSI("32", s)
	},
}

func wrapANSI(code, s string) string {
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}
