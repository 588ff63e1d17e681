//go:build linux

package wayland

import (
	"testing"
)

func TestStringRoundTrip(t *testing.T) {
	tests := []string{"", "a", "abc", "abcd", "text/plain;charset=utf-8"}

	for _, s := range tests {
		encoded := str(s)
		if len(encoded)%4 != 0 {
			t.Errorf("str(%q) length %d is not 4-byte aligned", s, len(encoded))
		}
		got, rest, err := decodeString(append(encoded, 0xAA))
		if err != nil {
			t.Fatalf("decodeString(str(%q)) returned error: %v", s, err)
		}
		if got != s {
			t.Errorf("decodeString(str(%q)) = %q", s, got)
		}
		if len(rest) != 1 || rest[0] != 0xAA {
			t.Errorf("decodeString(str(%q)) left %v, want trailing byte only", s, rest)
		}
	}
}

func TestDecodeString_Short(t *testing.T) {
	if _, _, err := decodeString([]byte{1, 0}); err == nil {
		t.Error("decodeString() on a truncated length field should fail")
	}
	if _, _, err := decodeString([]byte{8, 0, 0, 0, 'a'}); err == nil {
		t.Error("decodeString() on truncated data should fail")
	}
}

func TestSocketPath(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	got, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() returned error: %v", err)
	}
	if got != "/run/user/1000/wayland-1" {
		t.Errorf("SocketPath() = %q, want %q", got, "/run/user/1000/wayland-1")
	}

	t.Setenv("WAYLAND_DISPLAY", "/tmp/custom-socket")
	if got, _ := SocketPath(); got != "/tmp/custom-socket" {
		t.Errorf("SocketPath() = %q, want absolute display used as-is", got)
	}

	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("XDG_RUNTIME_DIR", "")
	if _, err := SocketPath(); err == nil {
		t.Error("SocketPath() without XDG_RUNTIME_DIR should fail")
	}
}
