package shellcmd

import (
	"reflect"
	"testing"
)

func TestExtractFileTargets_Delete(t *testing.T) {
	got := ExtractFileTargets("delete", "rm -rf build/dist")
	want := []string{"build/dist"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v want %#v", got, want)
	}
}

func TestExtractFileTargets_GitRm(t *testing.T) {
	got := ExtractFileTargets("delete", "git rm --cached secrets.env")
	want := []string{"secrets.env"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v want %#v", got, want)
	}
}

func TestExtractFileTargets_ReadSkipsSingleValueFlag(t *testing.T) {
	got := ExtractFileTargets("read", "tail -n 50 app.log")
	want := []string{"app.log"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v want %#v", got, want)
	}
}

func TestExtractFileTargets_UnknownExecutableReturnsNil(t *testing.T) {
	if got := ExtractFileTargets("delete", "echo hi"); got != nil {
		t.Errorf("unrecognised executable should yield nil targets, got %#v", got)
	}
}

func TestExtractFileTargets_ModifyFirstNonFlag(t *testing.T) {
	got := ExtractFileTargets("modify", "mv -v old.txt new.txt")
	want := []string{"old.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v want %#v", got, want)
	}
}
