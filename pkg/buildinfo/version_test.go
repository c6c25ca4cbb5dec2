package buildinfo

import (
	"strings"
	"testing"
)

func TestStamped(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	info := Get()
	if info.Dev() {
		t.Error("Dev() = true for a stamped version")
	}
	if got := info.String(); !strings.HasPrefix(got, "version: v1.2.3\n") {
		t.Errorf("String() = %q", got)
	}
	if got := Template(); !strings.HasSuffix(got, "\n") || !strings.Contains(got, "v1.2.3") {
		t.Errorf("Template() = %q, want version line", got)
	}
	if got := UserAgent(); got != "stackbar/v1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "stackbar/v1.2.3")
	}
}

func TestDev(t *testing.T) {
	if Version != "dev" {
		t.Skip("binary is stamped")
	}
	if !Get().Dev() {
		t.Error("Dev() = false for an unstamped build")
	}
}
