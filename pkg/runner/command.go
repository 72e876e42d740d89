package runner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies what a line of input asks for.
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandChoose
	CommandBack
	CommandRestart
	CommandConfirm
	CommandCancel
	CommandHelp
	CommandQuit
)

// Command is a parsed line of reader input.
type Command struct {
	Kind CommandKind
	// Index is the zero-based choice position for CommandChoose.
	Index int
}

var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand maps a line to a Command.
//
// Choices are numbered from 1 on screen. While the restart prompt is open only
// confirmation answers are accepted; anything other than yes dismisses it.
func ParseCommand(line string, promptOpen bool) (Command, error) {
	word := strings.ToLower(strings.TrimSpace(line))

	if promptOpen {
		switch word {
		case "y", "yes":
			return Command{Kind: CommandConfirm}, nil
		case "q", "quit", "exit":
			return Command{Kind: CommandQuit}, nil
		default:
			return Command{Kind: CommandCancel}, nil
		}
	}

	switch word {
	case "":
		return Command{Kind: CommandNone}, nil
	case "b", "back":
		return Command{Kind: CommandBack}, nil
	case "r", "restart":
		return Command{Kind: CommandRestart}, nil
	case "h", "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	}

	n, err := strconv.Atoi(word)
	if err != nil || n < 1 {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	return Command{Kind: CommandChoose, Index: n - 1}, nil
}
