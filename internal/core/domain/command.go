package domain

import "strings"

// Command is a single external process invocation.
type Command struct {
	// Args is the full argv; Args[0] is the program.
	Args []string

	// Env holds variables layered over the process environment.
	// PATH entries are prepended to the inherited PATH.
	Env map[string]string

	// Dir is the working directory, empty for the current one.
	Dir string
}

// Program returns the executable name, or "" for an empty command.
func (c Command) Program() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// String renders the command for logs.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}
