package shim

import (
	"reflect"
	"testing"

	"github.com/gzhole/veto/internal/policy"
)

func TestClassifyGit_RmTargetsFlagFilteredArgs(t *testing.T) {
	d := ClassifyGit([]string{"rm", "--cached", "secrets.env"})
	if d.Deny {
		t.Fatalf("git rm should not be an unconditional deny")
	}
	want := []string{"secrets.env"}
	if !reflect.DeepEqual(d.Targets, want) {
		t.Errorf("targets = %#v, want %#v", d.Targets, want)
	}
	if d.Action != policy.ActionDelete {
		t.Errorf("action = %v, want delete", d.Action)
	}
}

func TestClassifyGit_CheckoutDotIsUnconditionalDeny(t *testing.T) {
	d := ClassifyGit([]string{"checkout", "."})
	if !d.Deny {
		t.Fatalf("expected git checkout . to be denied unconditionally")
	}
}

func TestClassifyGit_CheckoutBranchIsPassthrough(t *testing.T) {
	d := ClassifyGit([]string{"checkout", "feature-branch"})
	if d.Deny || !d.Passthrough {
		t.Errorf("expected a plain branch checkout to pass through, got %+v", d)
	}
}

func TestClassifyGit_ResetHardIsUnconditionalDeny(t *testing.T) {
	d := ClassifyGit([]string{"reset", "--hard", "HEAD~1"})
	if !d.Deny {
		t.Fatalf("expected git reset --hard to be denied unconditionally")
	}
}

func TestClassifyGit_ResetSoftIsPassthrough(t *testing.T) {
	d := ClassifyGit([]string{"reset", "--soft", "HEAD~1"})
	if d.Deny || !d.Passthrough {
		t.Errorf("expected git reset --soft to pass through, got %+v", d)
	}
}

func TestClassifyGit_CleanWithoutDestructiveFlagsIsPassthrough(t *testing.T) {
	d := ClassifyGit([]string{"clean"})
	if d.Deny || !d.Passthrough {
		t.Errorf("expected a flagless git clean to pass through, got %+v", d)
	}
}

func TestClassifyGit_UnknownSubcommandIsPassthrough(t *testing.T) {
	d := ClassifyGit([]string{"status"})
	if !d.Passthrough {
		t.Errorf("expected an unrecognised subcommand to pass through, got %+v", d)
	}
}
