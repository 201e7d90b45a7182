package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Output destinations. Tests swap them for buffers.
var (
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			PaddingTop(1).
			Foreground(lipgloss.Color("9"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	infoStyle = lipgloss.NewStyle().
			Bold(false).
			PaddingTop(1).
			PaddingBottom(1).
			Foreground(lipgloss.AdaptiveColor{
			Light: "21",
			Dark:  "33",
		})

	successStyle = lipgloss.NewStyle().
			Bold(true).
			PaddingTop(1).
			Foreground(lipgloss.Color("2"))
)

// Error prints the error and any additional messages to the terminal
func Error(err error, msgs ...string) {
	if err == nil || err.Error() == "" {
		return
	}

	ErrorMsg(err.Error())
	if len(msgs) > 0 {
		ErrorMsg(msgs...)
	}
}

func ErrorMsg(msgs ...string) {
	for _, msg := range msgs {
		fmt.Fprintln(ErrOut, errorStyle.Render(msg))
	}
}

func FatalErr(err error, msgs ...string) {
	Error(err, msgs...)
	os.Exit(1)
}

const supportCTA = `Stuck? Run the command again with --debug and open an issue at https://github.com/devcompass/compass-cli/issues with the output.`

func ErrorWithSupportCTA(err error) {
	Error(err, supportCTA)
}

func FatalErrWithSupportCTA(err error) {
	Error(err, supportCTA)
	os.Exit(1)
}

func Warn(text string) {
	fmt.Fprintln(ErrOut, warnStyle.Render(text))
}

func Info(text string) {
	fmt.Fprintln(Out, infoStyle.Render(text))
}

func Success(text string) {
	fmt.Fprintln(Out, successStyle.Render(text))
}
