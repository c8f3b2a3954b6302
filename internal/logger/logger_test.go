package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)
			log.Debug("debug %d", 1)
			log.Info("info %d", 2)

			out := buf.String()
			if got := strings.Contains(out, "[DBG] debug 1"); got != tt.wantDebug {
				t.Fatalf("debug written = %t, want %t (%q)", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "[INF] info 2"); got != tt.wantInfo {
				t.Fatalf("info written = %t, want %t (%q)", got, tt.wantInfo, out)
			}
		})
	}
}

func TestNamedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelOff, &buf)
	cart := root.Named("cart")

	cart.Info("hidden")
	root.SetLevel(LevelNormal)
	cart.Warn("removed %q", "Cake")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("child logged while level was off: %q", out)
	}
	if !strings.Contains(out, `[WRN] cart: removed "Cake"`) {
		t.Fatalf("missing prefixed line: %q", out)
	}
	if cart.GetLevel() != LevelNormal {
		t.Fatalf("child level = %s, want normal", cart.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", LevelNormal, false},
		{"normal", LevelNormal, false},
		{"Verbose", LevelVerbose, false},
		{"debug", LevelVerbose, false},
		{"off", LevelOff, false},
		{" quiet ", LevelOff, false},
		{"loud", LevelNormal, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v, wantErr %t", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
