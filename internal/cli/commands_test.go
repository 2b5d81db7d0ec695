package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/matzehuels/pkgjson/pkg/errors"
	"github.com/matzehuels/pkgjson/pkg/json"
	"github.com/matzehuels/pkgjson/pkg/packagejson"
)

const sample = `{"version":"1.2.3","name":"app","scripts":{"test":"vitest","build":"tsc"},"zeta":{"a": 1},"private":true}`

// newTestFS returns an in-memory file system holding files.
func newTestFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for path, content := range files {
		if err := util.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

// runCLI executes the root command with args against fs and returns stdout.
func runCLI(t *testing.T, fs billy.Basic, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	c.FS = fs
	root := c.RootCommand()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func readTestFile(t *testing.T, fs billy.Basic, path string) string {
	t.Helper()
	data, err := util.ReadFile(fs, path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestLocateCommand(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"/work/package.json":             sample,
		"/work/packages/lib/src/main.ts": "",
	})

	tests := []struct {
		name string
		args []string
	}{
		{"flag", []string{"locate", "--dir", "/work/packages/lib/src"}},
		{"argument", []string{"locate", "/work/packages/lib"}},
		{"same directory", []string{"locate", "-C", "/work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, fs, tt.args...)
			if err != nil {
				t.Fatalf("locate error: %v", err)
			}
			if out != "/work/package.json\n" {
				t.Errorf("locate output = %q, want %q", out, "/work/package.json\n")
			}
		})
	}
}

func TestLocateCommandNotFound(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/work/src/main.ts": ""})

	out, err := runCLI(t, fs, "locate", "/work/src")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("locate error = %v, want NOT_FOUND", err)
	}
	if out != "" {
		t.Errorf("locate printed %q, want nothing on stdout", out)
	}
}

func TestShowCommand(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/work/package.json": sample})

	out, err := runCLI(t, fs, "show", "-C", "/work")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	want := `{
  "name": "app",
  "version": "1.2.3",
  "main": "index.js",
  "scripts": {
    "build": "tsc",
    "test": "vitest"
  },
  "private": true,
  "type": "commonjs",
  "zeta": {
    "a": 1
  }
}
`
	if out != want {
		t.Errorf("show output =\n%s\nwant\n%s", out, want)
	}

	if got := readTestFile(t, fs, "/work/package.json"); got != sample {
		t.Errorf("show modified the file: %q", got)
	}
}

func TestShowCommandCompact(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/work/package.json": sample})

	out, err := runCLI(t, fs, "show", "-C", "/work", "--compact")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	want := `{"name":"app","version":"1.2.3","main":"index.js","scripts":{"build":"tsc","test":"vitest"},"private":true,"type":"commonjs","zeta":{"a":1}}` + "\n"
	if out != want {
		t.Errorf("show --compact = %q, want %q", out, want)
	}
}

func TestShowCommandYAML(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/work/package.json": `{"name":"app","version":"1.0.0"}`})

	out, err := runCLI(t, fs, "show", "-C", "/work", "-o", "yaml")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	want := "name: app\nversion: 1.0.0\nmain: index.js\ntype: commonjs\n"
	if out != want {
		t.Errorf("show -o yaml = %q, want %q", out, want)
	}
}

func TestShowCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		args  []string
		code  errors.Code
	}{
		{"not found", map[string]string{"/work/x": ""}, []string{"show", "-C", "/work"}, errors.ErrCodeNotFound},
		{"syntax", map[string]string{"/work/package.json": `{"name":`}, []string{"show", "-C", "/work"}, errors.ErrCodeInvalidSyntax},
		{"missing version", map[string]string{"/work/package.json": `{"name":"x"}`}, []string{"show", "-C", "/work"}, errors.ErrCodeMissingField},
		{"bad output", map[string]string{"/work/package.json": sample}, []string{"show", "-C", "/work", "-o", "toml"}, errors.ErrCodeInvalidInput},
		{"missing file", map[string]string{"/work/x": ""}, []string{"show", "-f", "/work/package.json"}, errors.ErrCodeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, newTestFS(t, tt.files), tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestGetCommand(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/work/package.json": sample})

	tests := []struct {
		key  string
		want string
	}{
		{"name", "app\n"},
		{"main", "index.js\n"},
		{"private", "true\n"},
		{"scripts", "{\n  \"build\": \"tsc\",\n  \"test\": \"vitest\"\n}\n"},
		{"zeta", "{\n  \"a\": 1\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			out, err := runCLI(t, fs, "get", tt.key, "-C", "/work")
			if err != nil {
				t.Fatalf("get error: %v", err)
			}
			if out != tt.want {
				t.Errorf("get %s = %q, want %q", tt.key, out, tt.want)
			}
		})
	}

	if _, err := runCLI(t, fs, "get", "license", "-C", "/work"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("get license error = %v, want NOT_FOUND", err)
	}
}

func TestSetCommand(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/work/package.json": sample})

	steps := [][]string{
		{"set", "description", "A small app"},
		{"set", "engines", `{"node":">=18"}`},
		{"set", "prettier", `{"semi":false}`},
		{"set", "private", "null"},
	}
	for _, args := range steps {
		if _, err := runCLI(t, fs, append(args, "-C", "/work")...); err != nil {
			t.Fatalf("%v error: %v", args, err)
		}
	}

	d, err := packagejson.Decode([]byte(readTestFile(t, fs, "/work/package.json")))
	if err != nil {
		t.Fatal(err)
	}
	if d.Description == nil || *d.Description != "A small app" {
		t.Errorf("description = %v, want A small app", d.Description)
	}
	if d.Engines["node"] != ">=18" {
		t.Errorf("engines = %v", d.Engines)
	}
	if d.Private != nil {
		t.Errorf("private = %v, want unset", *d.Private)
	}
	raw, ok := d.Unknowns.Get("prettier")
	if !ok || string(raw) != `{"semi":false}` {
		t.Errorf("prettier = %s, %v", raw, ok)
	}
	if _, ok := d.Unknowns.Get("zeta"); !ok {
		t.Error("zeta was lost")
	}
}

func TestSetCommandInvalid(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/work/package.json": sample})

	_, err := runCLI(t, fs, "set", "keywords", `{"a":1}`, "-C", "/work")
	if !errors.Is(err, errors.ErrCodeInvalidField) {
		t.Fatalf("set error = %v, want INVALID_FIELD", err)
	}
	if got := readTestFile(t, fs, "/work/package.json"); got != sample {
		t.Errorf("failed set wrote the file: %q", got)
	}
}

func TestUnsetCommand(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/work/package.json": sample})

	if _, err := runCLI(t, fs, "unset", "zeta", "-C", "/work"); err != nil {
		t.Fatalf("unset zeta error: %v", err)
	}
	if got := readTestFile(t, fs, "/work/package.json"); strings.Contains(got, "zeta") {
		t.Errorf("zeta still present:\n%s", got)
	}

	if _, err := runCLI(t, fs, "unset", "name", "-C", "/work"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unset name error = %v, want INVALID_INPUT", err)
	}
	if _, err := runCLI(t, fs, "unset", "license", "-C", "/work"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unset license error = %v, want NOT_FOUND", err)
	}
}

func TestFmtCommand(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/work/package.json": sample})

	if _, err := runCLI(t, fs, "fmt", "--check", "-C", "/work"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("fmt --check error = %v, want INVALID_INPUT", err)
	}
	if got := readTestFile(t, fs, "/work/package.json"); got != sample {
		t.Fatalf("fmt --check wrote the file: %q", got)
	}

	if _, err := runCLI(t, fs, "fmt", "-C", "/work"); err != nil {
		t.Fatalf("fmt error: %v", err)
	}
	formatted := readTestFile(t, fs, "/work/package.json")
	if !strings.HasPrefix(formatted, "{\n  \"name\": \"app\",\n  \"version\": \"1.2.3\",") || !strings.HasSuffix(formatted, "}\n") {
		t.Errorf("fmt wrote:\n%s", formatted)
	}

	if _, err := runCLI(t, fs, "fmt", "--check", "-C", "/work"); err != nil {
		t.Errorf("fmt --check after fmt error: %v", err)
	}

	if _, err := runCLI(t, fs, "fmt", "--compact", "-C", "/work"); err != nil {
		t.Fatalf("fmt --compact error: %v", err)
	}
	compact := readTestFile(t, fs, "/work/package.json")
	if strings.Count(compact, "\n") != 1 || !json.Valid([]byte(compact)) {
		t.Errorf("fmt --compact wrote %q", compact)
	}
}

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"patch", "patch", "1.2.4"},
		{"minor", "minor", "1.3.0"},
		{"major", "major", "2.0.0"},
		{"explicit", "3.0.0-rc.1", "3.0.0-rc.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newTestFS(t, map[string]string{"/work/package.json": sample})
			if _, err := runCLI(t, fs, "version", tt.arg, "-C", "/work"); err != nil {
				t.Fatalf("version %s error: %v", tt.arg, err)
			}
			d, err := packagejson.Decode([]byte(readTestFile(t, fs, "/work/package.json")))
			if err != nil {
				t.Fatal(err)
			}
			if d.Version != tt.want {
				t.Errorf("version = %q, want %q", d.Version, tt.want)
			}
		})
	}
}

func TestVersionCommandErrors(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"/ok/package.json":  sample,
		"/bad/package.json": `{"name":"x","version":"latest"}`,
	})

	if _, err := runCLI(t, fs, "version", "1.x", "-C", "/ok"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("version 1.x error = %v, want INVALID_INPUT", err)
	}
	if _, err := runCLI(t, fs, "version", "patch", "-C", "/bad"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("version patch on %q error = %v, want INVALID_INPUT", "latest", err)
	}

	out, err := runCLI(t, fs, "version", "-C", "/ok")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("version output = %q, want it to contain 1.2.3", out)
	}
}

func TestNextVersion(t *testing.T) {
	tests := []struct {
		current, arg, want string
	}{
		{"1.2.3", "patch", "1.2.4"},
		{"1.2.3-beta.1", "patch", "1.2.3"},
		{"0.9.9", "minor", "0.10.0"},
		{"v1.0.0", "major", "2.0.0"},
		{"1.2.3", "4.5.6", "4.5.6"},
	}

	for _, tt := range tests {
		got, err := nextVersion(tt.current, tt.arg)
		if err != nil {
			t.Errorf("nextVersion(%q, %q) error: %v", tt.current, tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("nextVersion(%q, %q) = %q, want %q", tt.current, tt.arg, got, tt.want)
		}
	}
}

func TestInitCommand(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/projects/widget/README.md": ""})

	if _, err := runCLI(t, fs, "init", "-C", "/projects/widget"); err != nil {
		t.Fatalf("init error: %v", err)
	}
	want := `{
  "name": "widget",
  "version": "1.0.0",
  "main": "index.js",
  "type": "commonjs"
}
`
	if got := readTestFile(t, fs, "/projects/widget/package.json"); got != want {
		t.Errorf("init wrote:\n%s\nwant\n%s", got, want)
	}

	if _, err := runCLI(t, fs, "init", "-C", "/projects/widget"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("second init error = %v, want INVALID_INPUT", err)
	}
	if _, err := runCLI(t, fs, "init", "-C", "/projects/widget", "--force", "--name", "@acme/widget"); err != nil {
		t.Fatalf("init --force error: %v", err)
	}
	if got := readTestFile(t, fs, "/projects/widget/package.json"); !strings.Contains(got, `"name": "@acme/widget"`) {
		t.Errorf("init --force wrote:\n%s", got)
	}
}

func TestInitCommandMissingDir(t *testing.T) {
	fs := newTestFS(t, nil)

	if _, err := runCLI(t, fs, "init", "-C", "/nowhere"); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("init error = %v, want IO_ERROR", err)
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := runCLI(t, newTestFS(t, nil), "schema")
	if err != nil {
		t.Fatalf("schema error: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Fatalf("schema output is not JSON: %q", out)
	}
	for _, want := range []string{`"title": "package.json"`, `"peerDependenciesMeta"`, `"oneOf"`} {
		if !strings.Contains(out, want) {
			t.Errorf("schema output missing %s", want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, newTestFS(t, nil), "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Errorf("completion script does not mention %s", appName)
	}
}

func TestDepsCommand(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"/work/package.json": `{"name":"app","version":"1.0.0","dependencies":{"zod":"^3"},"devDependencies":{"vitest":"^1"}}`,
	})

	out, err := runCLI(t, fs, "deps", "-C", "/work")
	if err != nil {
		t.Fatalf("deps error: %v", err)
	}
	for _, want := range []string{"dependencies", "zod", "^3", "devDependencies", "vitest"} {
		if !strings.Contains(out, want) {
			t.Errorf("deps output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, fs, "deps", "-C", "/work", "-g", "dev")
	if err != nil {
		t.Fatalf("deps -g dev error: %v", err)
	}
	if strings.Contains(out, "zod") || !strings.Contains(out, "vitest") {
		t.Errorf("deps -g dev output:\n%s", out)
	}

	if _, err := runCLI(t, fs, "deps", "-C", "/work", "-g", "bundled"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("deps -g bundled error = %v, want INVALID_INPUT", err)
	}
}
