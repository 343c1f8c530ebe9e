package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const repairBody = `{"history": [
  {"iteration": 1, "status": "patched", "execution": {"success": false, "error": "IndexError"},
   "patch": {"patch_applied": true, "explanation": "guard empty list", "diff": "-x\n+y", "new_code": "print('fixed')"}},
  {"iteration": 2, "status": "success", "execution": {"success": true, "output": "ok"}}
]}`

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(string(body), "boom") {
			io.WriteString(w, `{"success": false, "error": "NameError: boom"}`)
			return
		}
		io.WriteString(w, `{"success": true, "output": "1 2 3"}`)
	})
	mux.HandleFunc("/repair", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, repairBody)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "ok"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// execute runs the root command with an isolated config and log file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, "ui:\n  theme: default\n", args...)
}

func executeWithConfig(t *testing.T, yamlCfg string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "autodebug.yaml")
	if err := os.WriteFile(cfgPath, []byte(yamlCfg), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--log-file", filepath.Join(dir, "autodebug.log")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	srv := newBackend(t)
	out, err := execute(t, "run", "--backend", srv.URL, "--case", "preorder")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	for _, want := range []string{"Running code...", "Output:", "1 2 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRunCommandServiceFailureExitsNonZero(t *testing.T) {
	srv := newBackend(t)
	src := filepath.Join(t.TempDir(), "bad.py")
	os.WriteFile(src, []byte("boom()"), 0o644)

	out, err := execute(t, "run", "--backend", srv.URL, src)
	if err == nil {
		t.Fatal("expected error for failed program")
	}
	if !strings.Contains(out, "NameError: boom") {
		t.Errorf("expected error text in output:\n%s", out)
	}
}

func TestRunCommandUnreachableBackend(t *testing.T) {
	srv := newBackend(t)
	url := srv.URL
	srv.Close()

	out, err := execute(t, "run", "--backend", url)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out, "Failed to connect to backend.") {
		t.Errorf("expected connect failure entry:\n%s", out)
	}
}

func TestRunCommandRejectsFileAndCase(t *testing.T) {
	if _, err := execute(t, "run", "--case", "preorder", "x.py"); err == nil {
		t.Error("expected error for file plus --case")
	}
}

func TestRepairCommandWritesFinalBuffer(t *testing.T) {
	srv := newBackend(t)
	dest := filepath.Join(t.TempDir(), "fixed.py")

	out, err := execute(t, "repair", "--backend", srv.URL, "--interval", "0s", "--out", dest)
	if err != nil {
		t.Fatalf("repair: %v\n%s", err, out)
	}
	order := []string{
		"Starting Autonomous Repair Loop...",
		"Iteration 1: patched",
		"Execution Error: IndexError",
		"Patch Applied: guard empty list",
		"+y",
		"Iteration 2: success",
		"Execution Output: ok",
	}
	pos := 0
	for _, want := range order {
		i := strings.Index(out[pos:], want)
		if i < 0 {
			t.Fatalf("expected %q after offset %d in:\n%s", want, pos, out)
		}
		pos += i + len(want)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "print('fixed')" {
		t.Errorf("final buffer = %q", data)
	}
}

func TestCasesCommand(t *testing.T) {
	out, err := execute(t, "cases")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "preorder") || !strings.Contains(out, "fib-memo") {
		t.Errorf("expected both cases listed:\n%s", out)
	}

	out, err = execute(t, "cases", "--show", "fib-memo")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "memo") {
		t.Errorf("expected case source:\n%s", out)
	}

	if _, err := execute(t, "cases", "--show", "nope"); err == nil {
		t.Error("expected error for unknown case")
	}
}

func TestHealthCommand(t *testing.T) {
	srv := newBackend(t)
	out, err := execute(t, "health", "--backend", srv.URL)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("unexpected output %q", out)
	}

	srv.Close()
	if _, err := execute(t, "health", "--backend", srv.URL); err == nil {
		t.Error("expected error for closed backend")
	}
}

func TestHealthCommandTimeoutSettings(t *testing.T) {
	srv := newBackend(t)
	for _, cfg := range []string{
		"backend:\n  timeout_seconds: 0\n",
		"backend:\n  timeout_seconds: 2\n",
	} {
		out, err := executeWithConfig(t, cfg, "health", "--backend", srv.URL)
		if err != nil {
			t.Fatalf("health with %q: %v", cfg, err)
		}
		if !strings.Contains(out, "backend "+srv.URL+" ok") {
			t.Errorf("unexpected output %q", out)
		}
	}
}

func TestVersionCommandDevBuild(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "autodebug version dev") || !strings.Contains(out, "update check skipped") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestUpdateCommandRefusesDevBuild(t *testing.T) {
	if _, err := execute(t, "update"); err == nil {
		t.Error("expected update to refuse a dev build")
	}
}
