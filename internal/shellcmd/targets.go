package shellcmd

import "strings"

// singleValueFlags lists flags whose immediate following argument is a
// value, not a target, for the `read` action's executables.
var singleValueFlags = map[string]bool{
	"-n": true, "-c": true, "--lines": true, "--bytes": true,
}

// executablesByAction maps each action class to the executables whose
// non-flag argument positions are parsed for file targets.
var executablesByAction = map[string][]string{
	"delete":  {"rm", "unlink", "rmdir", "git rm"},
	"modify":  {"mv", "cp"},
	"execute": {"node", "python", "python3", "bash", "sh"},
	"read":    {"cat", "head", "tail", "less", "more"},
}

// ExtractFileTargets parses a single simple command and returns the file
// targets relevant to action, or nil if the command's executable isn't one
// of the action's known tools.
func ExtractFileTargets(action, command string) []string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}

	executable, rest := matchExecutable(fields, action)
	if executable == "" {
		return nil
	}

	switch action {
	case "delete":
		if executable == "git rm" {
			return nonFlagArgs(rest, nil)
		}
		return nonFlagArgs(rest, nil)
	case "modify":
		return firstNonFlagArg(rest)
	case "execute":
		return firstNonFlagArg(rest)
	case "read":
		return nonFlagArgs(rest, singleValueFlags)
	default:
		return nil
	}
}

// matchExecutable finds the longest known executable (handling the two-word
// "git rm" form) for the given action and returns it plus the remaining
// argument words.
func matchExecutable(fields []string, action string) (string, []string) {
	known := executablesByAction[action]

	if len(fields) >= 2 {
		two := fields[0] + " " + fields[1]
		for _, k := range known {
			if k == two {
				return two, fields[2:]
			}
		}
	}
	for _, k := range known {
		if k == fields[0] {
			return k, fields[1:]
		}
	}
	return "", nil
}

func isFlag(arg string) bool {
	return strings.HasPrefix(arg, "-")
}

// firstNonFlagArg returns the first non-flag argument, wrapped in a
// single-element slice (or nil if none exists).
func firstNonFlagArg(args []string) []string {
	for _, a := range args {
		if !isFlag(a) {
			return []string{a}
		}
	}
	return nil
}

// nonFlagArgs returns every non-flag argument, skipping the value adjacent
// to any flag listed in singleValue (used by `read`'s -n/-c/--lines/--bytes).
func nonFlagArgs(args []string, singleValue map[string]bool) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if isFlag(a) {
			if singleValue != nil && singleValue[a] {
				i++
			}
			continue
		}
		out = append(out, a)
	}
	return out
}
