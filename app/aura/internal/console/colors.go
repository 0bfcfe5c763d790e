// Package console 负责 aura 命令行的彩色输出
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	SuccessColor = color.New(color.FgGreen, color.Bold)
	ErrorColor   = color.New(color.FgRed, color.Bold)
	WarningColor = color.New(color.FgYellow, color.Bold)
	InfoColor    = color.New(color.FgCyan, color.Bold)
	TitleColor   = color.New(color.FgMagenta, color.Bold)
)

// Out 普通输出目标，测试时可替换
var Out io.Writer = os.Stdout

func PrintSuccess(format string, args ...interface{}) {
	SuccessColor.Fprintf(Out, "✅ "+format+"\n", args...)
}

func PrintError(format string, args ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, "❌ "+format+"\n", args...)
}

func PrintWarning(format string, args ...interface{}) {
	WarningColor.Fprintf(Out, "⚠️  "+format+"\n", args...)
}

func PrintInfo(format string, args ...interface{}) {
	InfoColor.Fprintf(Out, "ℹ️  "+format+"\n", args...)
}

func PrintTitle(format string, args ...interface{}) {
	TitleColor.Fprintf(Out, "🎯 "+format+"\n", args...)
}

func PrintSeparator() {
	fmt.Fprintln(Out, strings.Repeat("─", 80))
}
