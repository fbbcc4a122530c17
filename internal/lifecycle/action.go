package lifecycle

// Action is the outcome of scanning the command line.
type Action string

const (
	ActionStatus Action = "status"
	ActionStart  Action = "start"
	ActionStop   Action = "stop"
	ActionDaemon Action = "daemon"
	ActionHelp   Action = "help"
)

func (a Action) String() string { return string(a) }

// SelectAction returns the first argument, scanning left to right, that is
// exactly one of status, start, stop or daemon. args[0] is not skipped.
// Without a match the result is ActionHelp.
func SelectAction(args []string) Action {
	for _, arg := range args {
		switch a := Action(arg); a {
		case ActionStatus, ActionStart, ActionStop, ActionDaemon:
			return a
		}
	}
	return ActionHelp
}
