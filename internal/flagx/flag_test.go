package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "keeps short flag and its value",
			args:         []string{"-c", "voltmate.json", "-a", "https://api.voltmate.example"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "voltmate.json"},
		},
		{
			name:         "keeps long flag in equals form",
			args:         []string{"--config=staging.json", "-a", "https://api.voltmate.example"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=staging.json"},
		},
		{
			name:         "keeps both forms in original order",
			args:         []string{"--config=staging.json", "-c", "local.json", "-t", "5"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=staging.json", "-c", "local.json"},
		},
		{
			name:         "drops unknown flags and positionals",
			args:         []string{"-t", "5", "--verbose=1", "stations"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value survives",
			args:         []string{"-c"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "next token starting with dash is not consumed as value",
			args:         []string{"-c", "-quiet"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "equals form may carry a dash-prefixed value",
			args:         []string{"--config=--odd-name.json"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=--odd-name.json"},
		},
		{
			name:         "several allowed flags pass through together",
			args:         []string{"-a", "https://api.voltmate.example", "-d", "voltmate.db", "--other", "x"},
			allowedFlags: []string{"-a", "-d"},
			want:         []string{"-a", "https://api.voltmate.example", "-d", "voltmate.db"},
		},
		{
			name:         "no args yields no args",
			args:         []string{},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "value with path separators stays one token",
			args:         []string{"-d", "/var/lib/voltmate/voltmate.db"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "/var/lib/voltmate/voltmate.db"},
		},
		{
			name:         "allowed flag followed by another allowed flag",
			args:         []string{"-c", "--config=staging.json"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "--config=staging.json"},
		},
		{
			name:         "repeated flag keeps every occurrence in order",
			args:         []string{"-c", "base.json", "-c", "override.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "base.json", "-c", "override.json"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c form", func(t *testing.T) {
		os.Args = []string{"voltmate", "-c", "/etc/voltmate/config.json"}
		assert.Equal(t, "/etc/voltmate/config.json", JsonConfigFlags())
	})

	t.Run("long -config form", func(t *testing.T) {
		os.Args = []string{"voltmate", "-config", "/etc/voltmate/staging.json"}
		assert.Equal(t, "/etc/voltmate/staging.json", JsonConfigFlags())
	})

	t.Run("no config flag present", func(t *testing.T) {
		os.Args = []string{"voltmate", "-a", "https://api.voltmate.example"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("later occurrence wins", func(t *testing.T) {
		os.Args = []string{"voltmate", "-c", "/etc/voltmate/a.json", "-config", "/etc/voltmate/b.json"}
		assert.Equal(t, "/etc/voltmate/b.json", JsonConfigFlags())
	})
}
