package shim

import "testing"

func TestNonFlagArgs_FiltersDashPrefixed(t *testing.T) {
	got := NonFlagArgs([]string{"--cached", "-v", "secrets.env", "other.txt"})
	want := []string{"secrets.env", "other.txt"}
	if len(got) != len(want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNonFlagArgs_AllFlagsReturnsNil(t *testing.T) {
	if got := NonFlagArgs([]string{"-a", "--bcached"}); got != nil {
		t.Errorf("expected nil, got %#v", got)
	}
}
