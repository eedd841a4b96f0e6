package builtin

import "github.com/gzhole/veto/internal/policy"

// FileBuiltin is the file-protection shape a phrase resolves to.
type FileBuiltin struct {
	Include      []string
	Exclude      []string
	Description  string
	CommandRules []policy.CommandRule
}

// FilePhrases is the file builtin table, keyed by normalised phrase.
var FilePhrases = map[string]FileBuiltin{
	"test files": {
		Include:     []string{"*.test.*", "*.spec.*", "__tests__/**"},
		Exclude:     []string{"test-results.*", "**/coverage/**", "*.log"},
		Description: "Test files are protected",
	},
	"environment files": {
		Include:     []string{".env", ".env.*", "*.env"},
		Exclude:     []string{".env.example", ".env.sample", ".env.template"},
		Description: "Environment files are protected",
	},
	"config files": {
		Include:     []string{"*.config.*", "*.conf", "config/**", "*.toml", "*.ini"},
		Exclude:     []string{"*.example.*", "*.sample.*"},
		Description: "Configuration files are protected",
	},
	"lock files": {
		Include:     []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "Cargo.lock", "go.sum"},
		Description: "Lock files are protected",
	},
	"migration files": {
		Include:     []string{"migrations/**", "*.migration.*", "db/migrate/**"},
		Description: "Database migration files are protected",
	},
	"ci config": {
		Include:     []string{".github/workflows/**", ".gitlab-ci.yml", ".circleci/**", "Jenkinsfile"},
		Description: "CI configuration is protected",
	},
	"git hooks": {
		Include:     []string{".git/hooks/**", ".husky/**"},
		Description: "Git hooks are protected",
	},
	"license files": {
		Include:     []string{"LICENSE*", "COPYING*"},
		Description: "License files are protected",
	},
	"documentation": {
		Include:     []string{"*.md", "docs/**"},
		Exclude:     []string{"CHANGELOG.md"},
		Description: "Documentation files are protected",
	},
	"snapshot files": {
		Include:     []string{"__snapshots__/**", "*.snap"},
		Description: "Test snapshot files are protected",
	},
}

// LookupFile resolves a normalised phrase to a FileBuiltin via direct match
// then containment fallback.
func LookupFile(phrase string) (FileBuiltin, bool) {
	table := make(map[string]bool, len(FilePhrases))
	for k := range FilePhrases {
		table[k] = true
	}
	key, ok := lookupContainment(table, phrase)
	if !ok {
		return FileBuiltin{}, false
	}
	return FilePhrases[key], true
}
