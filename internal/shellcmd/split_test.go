package shellcmd

import (
	"reflect"
	"testing"
)

func TestSplitCommands_Separators(t *testing.T) {
	got := SplitCommands(`echo "a && b"; cat f | grep x && bash -c "rm g"`)
	want := []string{
		`echo "a && b"`,
		"cat f",
		"grep x",
		`bash -c "rm g"`,
		"rm g",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCommands =\n%#v\nwant\n%#v", got, want)
	}
}

func TestSplitCommands_QuotesPreserved(t *testing.T) {
	got := SplitCommands(`echo "a; b && c"`)
	want := []string{`echo "a; b && c"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("quoted separators must not split: got %#v want %#v", got, want)
	}
}

func TestSplitCommands_SubshellGroupingNotSplit(t *testing.T) {
	got := SplitCommands(`(cd src && npm test)`)
	want := []string{"(cd src && npm test)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v want %#v", got, want)
	}
}

func TestSplitCommands_OrSeparator(t *testing.T) {
	got := SplitCommands(`make build || echo failed`)
	want := []string{"make build", "echo failed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v want %#v", got, want)
	}
}

func TestSplitCommands_Empty(t *testing.T) {
	if got := SplitCommands("   "); got != nil {
		t.Errorf("blank input should split to nil, got %#v", got)
	}
}
