package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MikeO7/rdflabel/internal/label"
	"github.com/MikeO7/rdflabel/internal/rdf"
)

const testConfig = `
namespaces:
  foaf: "http://xmlns.com/foaf/0.1/"
  ex: "http://example.org/"
registry:
  timeout: "2s"
  max_retries: 0
log:
  level: "warn"
`

const testGraph = `
prefixes:
  foaf: http://xmlns.com/foaf/0.1/
  ex: http://example.org/
statements:
  - subject: ex:alice
    predicate: http://www.w3.org/1999/02/22-rdf-syntax-ns#type
    object: foaf:Person
  - subject: ex:alice
    predicate: foaf:name
    literal: Alice
`

const testLOV = `[
  {"prefix": "dcterms", "nsp": "http://purl.org/dc/terms/", "uri": "http://purl.org/dc/terms/"},
  {"prefix": "foaf", "nsp": "http://xmlns.com/foaf/0.1/", "uri": "http://xmlns.com/foaf/0.1/"}
]`

// setupEnv points config and cache at a temp dir and returns it
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rdflabel.yml")
	if err := os.WriteFile(cfgPath, []byte(testConfig), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RDFLABEL_CONFIG", cfgPath)
	t.Setenv("RDFLABEL_CACHE_FILE", filepath.Join(dir, "cache", "vocabularies.yml"))
	t.Setenv("RDFLABEL_REGISTRY_URL", "http://127.0.0.1:1/unreachable")
	return dir
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected appConfig
		wantErr  bool
	}{
		{
			name: "defaults",
			args: []string{},
			expected: appConfig{
				configPath: "rdflabel.yml",
				withTypes:  true,
			},
		},
		{
			name: "override config path",
			args: []string{"--config", "/custom/rdflabel.yml"},
			expected: appConfig{
				configPath: "/custom/rdflabel.yml",
				withTypes:  true,
			},
		},
		{
			name: "graph and offline",
			args: []string{"--graph", "g.yml", "--offline"},
			expected: appConfig{
				configPath: "rdflabel.yml",
				graphFile:  "g.yml",
				offline:    true,
				withTypes:  true,
			},
		},
		{
			name: "disable types",
			args: []string{"--with-types=false", "--most-specific-type"},
			expected: appConfig{
				configPath:   "rdflabel.yml",
				mostSpecific: true,
				withTypes:    false,
				withTypesSet: true,
			},
		},
		{
			name: "positional iris",
			args: []string{"--log-level", "debug", "http://example.org/a", "_:b0"},
			expected: appConfig{
				configPath: "rdflabel.yml",
				logLevel:   "debug",
				withTypes:  true,
				iris:       []string{"http://example.org/a", "_:b0"},
			},
		},
		{
			name:    "invalid flag",
			args:    []string{"--invalid-flag"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseFlags() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}

			if got.configPath != tt.expected.configPath {
				t.Errorf("configPath = %v, want %v", got.configPath, tt.expected.configPath)
			}
			if got.graphFile != tt.expected.graphFile {
				t.Errorf("graphFile = %v, want %v", got.graphFile, tt.expected.graphFile)
			}
			if got.offline != tt.expected.offline {
				t.Errorf("offline = %v, want %v", got.offline, tt.expected.offline)
			}
			if got.mostSpecific != tt.expected.mostSpecific {
				t.Errorf("mostSpecific = %v, want %v", got.mostSpecific, tt.expected.mostSpecific)
			}
			if got.withTypes != tt.expected.withTypes || got.withTypesSet != tt.expected.withTypesSet {
				t.Errorf("withTypes = (%v, set %v), want (%v, set %v)",
					got.withTypes, got.withTypesSet, tt.expected.withTypes, tt.expected.withTypesSet)
			}
			if got.logLevel != tt.expected.logLevel {
				t.Errorf("logLevel = %v, want %v", got.logLevel, tt.expected.logLevel)
			}
			if strings.Join(got.iris, " ") != strings.Join(tt.expected.iris, " ") {
				t.Errorf("iris = %v, want %v", got.iris, tt.expected.iris)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"--version"}, stdout, stderr)

	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(stdout.String(), "rdflabel version") {
		t.Errorf("Expected version output, got: %s", stdout.String())
	}
}

func TestRun_Errors(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid flag", []string{"--bogus"}, "unknown flag"},
		{"nothing to do", []string{"--offline"}, "nothing to label"},
		{"invalid log level", []string{"--offline", "--log-level", "loud", "http://example.org/a"}, "invalid log level"},
		{"refresh offline", []string{"--offline", "--refresh"}, "offline mode"},
		{"missing graph", []string{"--offline", "--graph", "/nonexistent/graph.yml"}, "Failed to load graph"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := new(bytes.Buffer)
			stderr := new(bytes.Buffer)

			if code := run(context.Background(), tt.args, stdout, stderr); code != 1 {
				t.Errorf("run() exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestRun_LabelIRIs(t *testing.T) {
	setupEnv(t)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	args := []string{
		"--offline",
		"http://xmlns.com/foaf/0.1/Person",
		"http://www.w3.org/2000/01/rdf-schema#label",
		"_:b1",
	}

	if code := run(context.Background(), args, stdout, stderr); code != 0 {
		t.Fatalf("run() exit code = %d, stderr: %s", code, stderr.String())
	}

	want := []string{
		"http://xmlns.com/foaf/0.1/Person\tfoaf_Person",
		"http://www.w3.org/2000/01/rdf-schema#label\t" + label.HashedPrefix("http://www.w3.org/2000/01/rdf-schema#") + "_label",
		"_:b1\tBNb1",
	}
	got := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("run() output:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestRun_Graph(t *testing.T) {
	dir := setupEnv(t)
	graphPath := filepath.Join(dir, "graph.yml")
	if err := os.WriteFile(graphPath, []byte(testGraph), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("render diagram", func(t *testing.T) {
		stdout := new(bytes.Buffer)
		stderr := new(bytes.Buffer)
		code := run(context.Background(), []string{"--offline", "--graph", graphPath}, stdout, stderr)
		if code != 0 {
			t.Fatalf("run() exit code = %d, stderr: %s", code, stderr.String())
		}

		out := stdout.String()
		for _, want := range []string{
			"@startuml",
			`object "ex_alice:foaf_Person" as ex_alice {`,
			`  foaf_name = "Alice"`,
			"@enduml",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("diagram missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("label resources of the graph", func(t *testing.T) {
		stdout := new(bytes.Buffer)
		stderr := new(bytes.Buffer)
		code := run(context.Background(), []string{"--offline", "--graph", graphPath, "http://example.org/alice"}, stdout, stderr)
		if code != 0 {
			t.Fatalf("run() exit code = %d, stderr: %s", code, stderr.String())
		}
		if got := strings.TrimSpace(stdout.String()); got != "http://example.org/alice\tex_alice:foaf_Person" {
			t.Errorf("run() output = %q", got)
		}
	})

	t.Run("without types", func(t *testing.T) {
		stdout := new(bytes.Buffer)
		stderr := new(bytes.Buffer)
		code := run(context.Background(), []string{"--offline", "--with-types=false", "--graph", graphPath, "http://example.org/alice"}, stdout, stderr)
		if code != 0 {
			t.Fatalf("run() exit code = %d, stderr: %s", code, stderr.String())
		}
		if got := strings.TrimSpace(stdout.String()); got != "http://example.org/alice\tex_alice" {
			t.Errorf("run() output = %q", got)
		}
	})
}

func TestRun_RefreshThenOffline(t *testing.T) {
	setupEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testLOV))
	}))
	defer server.Close()
	t.Setenv("RDFLABEL_REGISTRY_URL", server.URL)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	if code := run(context.Background(), []string{"--refresh"}, stdout, stderr); code != 0 {
		t.Fatalf("run(--refresh) exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "2 vocabularies cached") {
		t.Errorf("run(--refresh) output = %q", stdout.String())
	}

	// the cache now answers for namespaces the config does not bind
	stdout.Reset()
	if code := run(context.Background(), []string{"--offline", "http://purl.org/dc/terms/title"}, stdout, stderr); code != 0 {
		t.Fatalf("run() exit code = %d, stderr: %s", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "http://purl.org/dc/terms/title\tdcterms_title" {
		t.Errorf("run() output = %q, want dcterms_title from the cache", got)
	}
}

func TestRun_OnlineRegistry(t *testing.T) {
	setupEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testLOV))
	}))
	defer server.Close()
	t.Setenv("RDFLABEL_REGISTRY_URL", server.URL)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	if code := run(context.Background(), []string{"http://purl.org/dc/terms/creator"}, stdout, stderr); code != 0 {
		t.Fatalf("run() exit code = %d, stderr: %s", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "http://purl.org/dc/terms/creator\tdcterms_creator" {
		t.Errorf("run() output = %q", got)
	}
}

func TestBindNamespaces(t *testing.T) {
	g := rdf.NewGraph()
	g.SetPrefix("ex", "http://example.org/")

	bindNamespaces(g, map[string]string{
		"ex":      "http://other.example.org/",
		"example": "http://example.org/",
		"foaf":    "http://xmlns.com/foaf/0.1/",
		"friend":  "http://xmlns.com/foaf/0.1/",
	})

	prefixes := g.Prefixes()
	if prefixes["ex"] != "http://example.org/" {
		t.Errorf("graph prefix ex was overridden: %q", prefixes["ex"])
	}
	if _, ok := prefixes["example"]; ok {
		t.Errorf("namespace already bound by the graph should not get a second prefix")
	}
	if prefixes["foaf"] != "http://xmlns.com/foaf/0.1/" {
		t.Errorf("foaf not bound: %v", prefixes)
	}
	if _, ok := prefixes["friend"]; ok {
		t.Errorf("second prefix for the same namespace should be skipped")
	}
}
