package shellcmd

import "testing"

func TestCommandMatches_ExactEquality(t *testing.T) {
	if !CommandMatches("PNPM Install", "pnpm install") {
		t.Errorf("exact match should be case/whitespace insensitive")
	}
}

func TestCommandMatches_PrefixNoWildcard(t *testing.T) {
	if !CommandMatches("git push origin main", "git push") {
		t.Errorf("a wildcard-free pattern should prefix-match with a following space")
	}
	if CommandMatches("git pushx", "git push") {
		t.Errorf("prefix match must respect word boundary, not just string prefix")
	}
}

func TestCommandMatches_LeadingStarIsSubstring(t *testing.T) {
	if !CommandMatches("cd src && npm install lodash", "*npm install*") {
		t.Errorf("leading-star pattern should substring match")
	}
}

func TestCommandMatches_SplitAtFirstStar(t *testing.T) {
	if !CommandMatches("npm install lodash", "npm install*") {
		t.Errorf("expected npm install* to match npm install lodash")
	}
	if CommandMatches("yarn install lodash", "npm install*") {
		t.Errorf("prefix literal must match before the glob tail applies")
	}
}

func TestExpandAliases_NpmI(t *testing.T) {
	variations := ExpandAliases("npm i lodash")
	want := map[string]bool{"npm i lodash": true, "npm install lodash": true}
	for _, v := range variations {
		delete(want, v)
	}
	if len(want) != 0 {
		t.Errorf("missing alias variations: %v (got %v)", want, variations)
	}
}

func TestExpandAliases_GitCheckout(t *testing.T) {
	variations := ExpandAliases("git co main")
	found := false
	for _, v := range variations {
		if v == "git checkout main" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected git co to expand to git checkout, got %v", variations)
	}
}
