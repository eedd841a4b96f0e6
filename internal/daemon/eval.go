package daemon

import (
	"github.com/gzhole/veto/internal/matcher"
	"github.com/gzhole/veto/internal/policy"
	"github.com/gzhole/veto/internal/shellcmd"
)

// Evaluate runs the per-request evaluation pipeline against every active
// policy, first blocking policy wins. policies is iterated in declared
// order; within a policy's CommandRules, rules are also tried in declared
// order.
func Evaluate(req policy.CheckRequest, policies []*policy.Policy) policy.CheckResponse {
	if req.Command != "" {
		return evaluateCommand(req.Command, policies)
	}
	return evaluateFile(req, policies)
}

func evaluateCommand(command string, policies []*policy.Policy) policy.CheckResponse {
	simple := shellcmd.SplitCommands(command)
	if len(simple) == 0 {
		simple = []string{command}
	}

	for _, p := range policies {
		if len(p.CommandRules) == 0 {
			continue
		}
		for _, cmd := range simple {
			for _, variant := range shellcmd.ExpandAliases(cmd) {
				for _, rule := range p.CommandRules {
					for _, block := range rule.Block {
						if shellcmd.CommandMatches(variant, block) {
							return policy.CheckResponse{Allowed: false, Reason: rule.Reason, Suggest: rule.Suggest}
						}
					}
				}
			}
		}
	}
	return policy.CheckResponse{Allowed: true}
}

func evaluateFile(req policy.CheckRequest, policies []*policy.Policy) policy.CheckResponse {
	for _, p := range policies {
		if len(p.Include) == 0 {
			continue
		}
		if req.Action != "" && req.Action != string(p.Action) {
			continue
		}
		if matcher.IsProtected(req.Target, p) {
			return policy.CheckResponse{Allowed: false, Reason: p.Description}
		}
	}
	return policy.CheckResponse{Allowed: true}
}
