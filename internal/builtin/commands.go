package builtin

import "github.com/gzhole/veto/internal/policy"

// CommandBuiltin is the command-restriction shape a phrase resolves to.
type CommandBuiltin struct {
	Description  string
	CommandRules []policy.CommandRule
}

// CommandPhrases is the command builtin table, keyed by normalised phrase.
var CommandPhrases = map[string]CommandBuiltin{
	"prefer pnpm": {
		Description: "Use pnpm instead of npm or yarn",
		CommandRules: []policy.CommandRule{
			{Block: []string{"npm install*", "npm i", "npm i *"}, Reason: "npm is disallowed, use pnpm", Suggest: "pnpm install"},
			{Block: []string{"yarn", "yarn add*"}, Reason: "yarn is disallowed, use pnpm", Suggest: "pnpm install"},
		},
	},
	"prefer yarn": {
		Description: "Use yarn instead of npm or pnpm",
		CommandRules: []policy.CommandRule{
			{Block: []string{"npm install*", "npm i", "npm i *"}, Reason: "npm is disallowed, use yarn", Suggest: "yarn add"},
			{Block: []string{"pnpm install*", "pnpm add*"}, Reason: "pnpm is disallowed, use yarn", Suggest: "yarn add"},
		},
	},
	"no force push": {
		Description: "Force pushes are disallowed",
		CommandRules: []policy.CommandRule{
			{Block: []string{"git push*--force*", "git push*-f*"}, Reason: "force push is disallowed", Suggest: "git push --force-with-lease"},
		},
	},
	"no sudo": {
		Description: "sudo is disallowed",
		CommandRules: []policy.CommandRule{
			{Block: []string{"sudo*"}, Reason: "sudo is disallowed"},
		},
	},
	"no global installs": {
		Description: "Global package installs are disallowed",
		CommandRules: []policy.CommandRule{
			{Block: []string{"npm install -g*", "npm i -g*", "pnpm add -g*", "yarn global add*"}, Reason: "global installs are disallowed", Suggest: "add the package as a project dependency"},
		},
	},
	"no pip install": {
		Description: "pip install is disallowed",
		CommandRules: []policy.CommandRule{
			{Block: []string{"pip install*", "pip3 install*"}, Reason: "pip install is disallowed", Suggest: "use poetry or uv"},
		},
	},
	"prefer poetry": {
		Description: "Use poetry instead of pip",
		CommandRules: []policy.CommandRule{
			{Block: []string{"pip install*", "pip3 install*"}, Reason: "pip is disallowed, use poetry", Suggest: "poetry add"},
		},
	},
}

// LookupCommand resolves a normalised phrase to a CommandBuiltin.
func LookupCommand(phrase string) (CommandBuiltin, bool) {
	table := make(map[string]bool, len(CommandPhrases))
	for k := range CommandPhrases {
		table[k] = true
	}
	key, ok := lookupContainment(table, phrase)
	if !ok {
		return CommandBuiltin{}, false
	}
	return CommandPhrases[key], true
}
