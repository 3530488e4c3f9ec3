package termstyle

import "testing"

func TestWrapDisabled(t *testing.T) {
	prev := Enabled()
	defer SetEnabled(prev)

	SetEnabled(false)
	if got := Red("fail"); got != "fail" {
		t.Errorf("disabled Red = %q, want plain text", got)
	}

	SetEnabled(true)
	if got := Red("fail"); got != "\033[31mfail\033[0m" {
		t.Errorf("enabled Red = %q", got)
	}
	if got := Bold(""); got != "" {
		t.Errorf("empty string should stay empty, got %q", got)
	}
}
