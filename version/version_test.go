package version

import "testing"

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"plain", Info{Version: "1.0.0"}, "1.0.0"},
		{"commit", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{"dirty", Info{Version: "dev", GitCommit: "abc1234", Dirty: true}, "dev-abc1234-dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Short(); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetUsesLdflags(t *testing.T) {
	old := Version
	Version = "2.3.4"
	t.Cleanup(func() { Version = old })

	info := Get()
	if info.Version != "2.3.4" {
		t.Errorf("Version = %q", info.Version)
	}
	if len(info.GitCommit) > 7 {
		t.Errorf("commit not shortened: %q", info.GitCommit)
	}
}
