package browser

import (
	"errors"
	"os/exec"
	"runtime"
)

var ErrUnsupportedPlatform = errors.New("opening files is not supported on " + runtime.GOOS)

// OpenCmd returns the command that opens target, a file path or url, with the
// platform's default application.
func OpenCmd(target string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	case "darwin":
		return exec.Command("open", target), nil
	}
	return nil, ErrUnsupportedPlatform
}

// Open starts the default application for target without waiting for it.
func Open(target string) error {
	cmd, err := OpenCmd(target)
	if err != nil {
		return err
	}
	return cmd.Start()
}
