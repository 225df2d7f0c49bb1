package status

import "time"

// Data contains all the information to display in status
type Data struct {
	Version string

	// Configuration file
	ConfigPath  string
	ConfigFound bool

	// Session settings
	LogLevel          string
	LogFile           string
	HistorySize       int
	WindowSize        int
	SpinnerInterval   time.Duration
	HistoryNavigation bool

	Commands []CommandInfo
}

// CommandInfo describes a command offered at the prompt
type CommandInfo struct {
	Name        string
	Description string
	Args        []ArgInfo
	Builtin     bool
}

// ArgInfo describes one argument of a command
type ArgInfo struct {
	Name   string
	Source string // "values", "exec" or "free"
	Detail string // Values joined, or the exec command
	Masked bool
	// ShowAlways keeps the values whatever is typed
	ShowAlways bool
	OnAccept   bool
}

// Usage returns the synopsis of the command, e.g. "deploy <env> <service>"
func (c CommandInfo) Usage() string {
	usage := c.Name
	for _, arg := range c.Args {
		usage += " <" + arg.Name + ">"
	}
	return usage
}
