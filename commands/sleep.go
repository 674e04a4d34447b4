package commands

import (
	"fmt"
	"strconv"
	"time"
)

// parseSleep accepts a whole number of seconds or a Go duration.
func parseSleep(arg string) (time.Duration, error) {
	if secs, err := strconv.Atoi(arg); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("invalid time interval %q", arg)
		}
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(arg)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid time interval %q", arg)
	}
	return d, nil
}

// Sleep pauses for the given time.
func Sleep(p *Process) int {
	cmd := &SimpleCommand{
		Use:   "sleep NUMBER",
		Short: "Pause for NUMBER seconds, or a duration such as 1.5s or 2m.",
	}

	return cmd.RunE(p, func() error {
		args := cmd.Flags().Args()
		if len(args) != 1 {
			return fmt.Errorf("expected one argument, got %d", len(args))
		}

		d, err := parseSleep(args[0])
		if err != nil {
			return err
		}
		time.Sleep(d)
		return nil
	})
}

var _ CommandFunc = Sleep

func init() {
	mustAddCmd("sleep", Sleep)
}
