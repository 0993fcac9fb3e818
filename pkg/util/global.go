package util

// const
const (
	StartCodon = "ATG"
	StopSymbol = "*"
	// 两端无关字符
	blank = " \t\r\n"
)
