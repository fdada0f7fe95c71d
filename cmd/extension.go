package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// Environment passed to extensions, so that they share the global flags of the main command.
const (
	EnvConfigFile = "HISTRATES_CONFIG_FILE"
	EnvVerbose    = "HISTRATES_VERBOSE"
	EnvRaw        = "HISTRATES_RAW"
)

// RunExtension attempts to find and execute an external histrates-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "histrates-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Printf("missing-extension name=%q err=%q", name, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvConfigFile+"="+*configFile,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
		EnvRaw+"="+strconv.FormatBool(*raw),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
