package propfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"orderedprops/internal/config"
	"orderedprops/properties"
)

func setKey(key, value string) func(*properties.Properties) error {
	return func(p *properties.Properties) error {
		p.Set(key, value)
		return nil
	}
}

func TestOpenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.properties")
	f, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !f.Props().IsEmpty() {
		t.Errorf("Props() = %s, want empty", f.Props())
	}
	if f.Format() != FormatText {
		t.Errorf("Format() = %s, want text", f.Format())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Open created %s", path)
	}
}

func TestOpenLoadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.properties")
	if err := os.WriteFile(path, []byte("# header\nzeta=1\nalpha = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha"}, f.Props().Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenBadContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.properties")
	if err := os.WriteFile(path, []byte("a=\\u12"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path, Options{})
	if !errors.Is(err, properties.ErrFormat) {
		t.Errorf("Open error = %v, want ErrFormat", err)
	}
}

func TestUpdateWritesEachFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"text", "app.properties", "b=2\na=1\n"},
		{"yaml", "app.yaml", "b: \"2\"\na: \"1\"\n"},
		{"xml", "app.xml", "<entry key=\"b\">2</entry>\n<entry key=\"a\">1</entry>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			f, err := Open(path, Options{SuppressDate: true})
			if err != nil {
				t.Fatal(err)
			}
			if err := f.Update(func(p *properties.Properties) error {
				p.Set("b", "2")
				p.Set("a", "1")
				return nil
			}); err != nil {
				t.Fatalf("Update: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(raw), tt.want) {
				t.Errorf("file contents = %q, want to contain %q", raw, tt.want)
			}

			reopened, err := Open(path, Options{})
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			if !reopened.Props().Entries().Equal(f.Props().Entries()) {
				t.Errorf("reopened = %s, want %s", reopened.Props(), f.Props())
			}
		})
	}
}

func TestUpdateErrorWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.properties")
	f, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err = f.Update(func(p *properties.Properties) error {
		p.Set("k", "v")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want %v", err, boom)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file written despite error: stat = %v", err)
	}
}

func TestUpdateWithComment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.properties")
	f, err := Open(path, Options{SuppressDate: true, Comment: "managed"})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Update(setKey("k", "v")); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(raw), "#managed\nk=v\n"; got != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}
}

func TestUTF8Encoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.properties")
	opts := Options{SuppressDate: true, Encoding: config.EncodingUTF8}
	f, err := Open(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Update(setKey("greeting", "héllo")); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(raw), "greeting=héllo\n"; got != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}

	latin, err := Open(path, Options{SuppressDate: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := latin.Save(); err != nil {
		t.Fatal(err)
	}
	raw, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// UTF-8 bytes read as Latin-1 come back as two escaped characters.
	if got, want := string(raw), "greeting=h\\u00C3\\u00A9llo\n"; got != want {
		t.Errorf("file contents = %q, want %q", got, want)
	}
}

func TestUpdateCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.properties")
	f, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Update(setKey("k", "v")); err != nil {
		t.Fatalf("Update with nested path: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestUpdateSeesOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.properties")

	first, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Update(setKey("keep", "yes")); err != nil {
		t.Fatal(err)
	}
	if err := first.Update(setKey("remove", "yes")); err != nil {
		t.Fatal(err)
	}

	second, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := second.Update(setKey("other", "val")); err != nil {
		t.Fatal(err)
	}

	if err := first.Update(func(p *properties.Properties) error {
		p.Remove("remove")
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	final, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"keep", "other"}, final.Props().Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.properties")
	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := Open(path, Options{})
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = f.Update(setKey(fmt.Sprintf("key%d", i), fmt.Sprintf("val%d", i)))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: %v", i, err)
		}
	}

	f, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if f.Props().Len() != n {
		t.Errorf("Len() = %d after concurrent writes, want %d", f.Props().Len(), n)
	}
}

func TestSaveAsConverts(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.properties")
	if err := os.WriteFile(src, []byte("b=2\na=1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(src, Options{})
	if err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "out.data")
	if err := f.SaveAs(dst, FormatYAML); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	converted, err := Open(dst, Options{Format: FormatYAML})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, converted.Props().Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.properties": FormatText,
		"a.conf":       FormatText,
		"noext":        FormatText,
		"a.xml":        FormatXML,
		"A.XML":        FormatXML,
		"a.yaml":       FormatYAML,
		"a.yml":        FormatYAML,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"": FormatAuto, "properties": FormatText, "XML": FormatXML, "yml": FormatYAML} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %s, %v; want %s", name, got, err, want)
		}
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Error("ParseFormat(toml) succeeded, want error")
	}
}
