package models

import "strings"

// CommandType enumerates supported herd manager commands.
type CommandType string

const (
	CommandHerd      CommandType = "herd"
	CommandAnimal    CommandType = "animal"
	CommandLactation CommandType = "lactation"
	CommandReady     CommandType = "ready"
	CommandHelp      CommandType = "help"
	CommandUnknown   CommandType = "unknown"
)

var commandAliases = map[string]CommandType{
	"herd":      CommandHerd,
	"hato":      CommandHerd,
	"rebano":    CommandHerd,
	"animal":    CommandAnimal,
	"cabra":     CommandAnimal,
	"lactation": CommandLactation,
	"lactancia": CommandLactation,
	"ready":     CommandReady,
	"listos":    CommandReady,
	"help":      CommandHelp,
	"ayuda":     CommandHelp,
}

// Command represents a parsed instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from a free-form message. Animal ids keep
// their original case.
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(strings.TrimSpace(message))
	if len(tokens) == 0 {
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	if t, ok := commandAliases[head]; ok {
		cmd.Type = t
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
