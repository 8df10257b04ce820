package pkg

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	v := Version()
	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(v) {
		t.Errorf("Version() = %q, want semantic version", v)
	}

	if strings.ContainsAny(v, " \n") {
		t.Errorf("Version() = %q contains whitespace", v)
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/bin/eldiro", "eldiro"},
		{"/tmp/eldiro.exe", "eldiro"},
		{"/tmp/__debug_bin1234", Name},
		{"/home/u/.eldiro", "eldiro"},
		{"...", Name},
		{"elx", "elx"},
	}

	for _, tt := range tests {
		if got := prefixOf(tt.path); got != tt.want {
			t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDirs(t *testing.T) {
	for name, dir := range map[string]string{
		"ConfigDir": ConfigDir(),
		"CacheDir":  CacheDir(),
	} {
		if filepath.Base(dir) != Prefix() {
			t.Errorf("%s() = %q, want base %q", name, dir, Prefix())
		}
	}
}
