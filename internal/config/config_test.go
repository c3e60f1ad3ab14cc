package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Write.Encoding != EncodingLatin1 {
		t.Errorf("Write.Encoding = %q, want %q", cfg.Write.Encoding, EncodingLatin1)
	}
	if cfg.Write.SuppressDate {
		t.Error("Write.SuppressDate = true, want false")
	}
	if cfg.XML.Encoding != "UTF-8" {
		t.Errorf("XML.Encoding = %q, want UTF-8", cfg.XML.Encoding)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(Default()) = %v", err)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "write:\n  suppress_date: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Write.SuppressDate {
		t.Error("Write.SuppressDate = false, want true")
	}
	if cfg.Write.Encoding != EncodingLatin1 {
		t.Errorf("Write.Encoding = %q, want default %q", cfg.Write.Encoding, EncodingLatin1)
	}
	if cfg.XML.Encoding != "UTF-8" {
		t.Errorf("XML.Encoding = %q, want default UTF-8", cfg.XML.Encoding)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("write: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("Load error = %v, want parsing error", err)
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.Write.Comment = "managed by props"
	want.Write.Encoding = EncodingUTF8
	want.XML.Encoding = "ISO-8859-1"

	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestResolve_ExplicitMissing(t *testing.T) {
	_, _, err := Resolve(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Resolve error = %v, want missing-file error", err)
	}
}

func TestResolve_DefaultLocationOptional(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvSuppressDate, "")
	t.Setenv(EnvEncoding, "")
	t.Setenv(EnvJSON, "")

	cfg, path, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Resolve = %+v, want defaults", cfg)
	}
	if !strings.HasSuffix(path, filepath.Join("props", "config.yaml")) {
		t.Errorf("path = %q, want .../props/config.yaml", path)
	}
}

func TestResolve_EnvConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("json: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvJSON, "")

	cfg, got, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	if !cfg.JSON {
		t.Error("JSON = false, want true")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvSuppressDate, "1")
	t.Setenv(EnvEncoding, EncodingUTF8)
	t.Setenv(EnvJSON, "true")

	cfg := Default()
	if err := ApplyEnvOverrides(&cfg); err != nil {
		t.Fatalf("ApplyEnvOverrides: %v", err)
	}
	if !cfg.Write.SuppressDate {
		t.Error("Write.SuppressDate = false, want true")
	}
	if cfg.Write.Encoding != EncodingUTF8 {
		t.Errorf("Write.Encoding = %q, want %q", cfg.Write.Encoding, EncodingUTF8)
	}
	if !cfg.JSON {
		t.Error("JSON = false, want true")
	}
}

func TestApplyEnvOverrides_NoOverride(t *testing.T) {
	t.Setenv(EnvSuppressDate, "")
	t.Setenv(EnvEncoding, "")
	t.Setenv(EnvJSON, "")

	cfg := Default()
	if err := ApplyEnvOverrides(&cfg); err != nil {
		t.Fatalf("ApplyEnvOverrides: %v", err)
	}
	if cfg != Default() {
		t.Errorf("config changed without overrides: %+v", cfg)
	}
}

func TestApplyEnvOverrides_BadBool(t *testing.T) {
	t.Setenv(EnvSuppressDate, "sometimes")

	cfg := Default()
	err := ApplyEnvOverrides(&cfg)
	if err == nil || !strings.Contains(err.Error(), EnvSuppressDate) {
		t.Errorf("ApplyEnvOverrides error = %v, want error naming %s", err, EnvSuppressDate)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Write.Encoding = "ebcdic"
	cfg.XML.Encoding = "x-klingon"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate = nil, want error")
	}
	for _, want := range []string{"write.encoding", "xml.encoding"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate error %q does not mention %s", err, want)
		}
	}
}

func TestValidate_KnownXMLEncodings(t *testing.T) {
	for _, enc := range []string{"UTF-8", "utf-8", "ISO-8859-1", "windows-1252"} {
		cfg := Default()
		cfg.XML.Encoding = enc
		if err := Validate(cfg); err != nil {
			t.Errorf("Validate(xml.encoding=%q) = %v", enc, err)
		}
	}
}
