// Package policypack loads YAML policy packs from ~/.veto/packs/*.yaml,
// extending the builtin tables without waiting on the LLM tier: one YAML
// file per pack, a leading underscore in the filename disables it, entries
// merge into the base tables additively.
package policypack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gzhole/veto/internal/builtin"
	"github.com/gzhole/veto/internal/policy"
)

// Entry is one pack-contributed builtin, keyed by phrase the same way the
// three baked-in tables are.
type Entry struct {
	Phrase       string              `yaml:"phrase"`
	Include      []string            `yaml:"include,omitempty"`
	Exclude      []string            `yaml:"exclude,omitempty"`
	Description  string              `yaml:"description"`
	CommandRules []policy.CommandRule `yaml:"commandRules,omitempty"`
	ASTRules     []policy.ASTRule     `yaml:"astRules,omitempty"`
}

// Pack is one ~/.veto/packs/*.yaml file.
type Pack struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Author      string  `yaml:"author"`
	Entries     []Entry `yaml:"entries"`
}

// Info summarises a discovered pack for "veto cache"/"veto packs" style
// listings.
type Info struct {
	Name    string
	Path    string
	Enabled bool
	Entries int
}

// Tables is the set of extension lookups a pack load contributes, merged
// on top of the baked-in builtin.FilePhrases/CommandPhrases/ASTPhrases at
// lookup time by the caller (the compiler cascade).
type Tables struct {
	File map[string]builtin.FileBuiltin
	AST  map[string]builtin.ASTBuiltin
}

// Load reads every *.yaml file in packsDir (missing directory is not an
// error — just no packs) and merges enabled ones into a Tables.
func Load(packsDir string) (Tables, []Info, error) {
	tables := Tables{File: map[string]builtin.FileBuiltin{}, AST: map[string]builtin.ASTBuiltin{}}

	entries, err := os.ReadDir(packsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return tables, nil, nil
		}
		return tables, nil, err
	}

	var infos []Info
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		path := filepath.Join(packsDir, e.Name())
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		enabled := !strings.HasPrefix(base, "_")

		pack, err := loadOne(path)
		if err != nil {
			infos = append(infos, Info{Name: base, Path: path, Enabled: enabled})
			continue
		}
		name := pack.Name
		if name == "" {
			name = base
		}
		infos = append(infos, Info{Name: name, Path: path, Enabled: enabled, Entries: len(pack.Entries)})

		if !enabled {
			continue
		}
		mergeInto(&tables, pack)
	}
	return tables, infos, nil
}

func loadOne(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("policypack: parse %s: %w", path, err)
	}
	return &pack, nil
}

func mergeInto(tables *Tables, pack *Pack) {
	for _, entry := range pack.Entries {
		phrase := builtin.NormalizePhrase(entry.Phrase)
		if len(entry.ASTRules) > 0 {
			tables.AST[phrase] = builtin.ASTBuiltin{Description: entry.Description, ASTRules: entry.ASTRules}
			continue
		}
		tables.File[phrase] = builtin.FileBuiltin{
			Include:      entry.Include,
			Exclude:      entry.Exclude,
			Description:  entry.Description,
			CommandRules: entry.CommandRules,
		}
	}
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
