package cli

import (
	"strconv"
	"strings"

	"labkit/internal/errors"
)

// subcommand splits off the action word, defaulting when args is empty.
func subcommand(args []string, fallback string) (string, []string) {
	if len(args) == 0 {
		return fallback, nil
	}
	return strings.ToLower(args[0]), args[1:]
}

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return errors.NewInvalidInputError("args", strings.Join(args, " "), "usage: "+usage)
	}
	return nil
}

func unknownAction(action, usage string) error {
	return errors.NewInvalidInputError("action", action, "unknown action "+strconv.Quote(action)+"; usage: "+usage)
}

func argID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError("id", raw, "id must be a whole number: "+raw)
	}
	return id, nil
}

func argOnOff(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, errors.NewInvalidInputError("switch", raw, "expected on or off")
}
