package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testEnv(t *testing.T) string {
	t.Helper()
	out := filepath.Join(t.TempDir(), "output")
	t.Setenv("OUTPUT_DIR", out)
	t.Setenv("LOG_FILE", "")
	t.Setenv("TTS_CATALOG_URL", "")
	t.Setenv("TTS_DEFAULT_LANGUAGE", "")
	return out
}

func TestNewVersionCommand(t *testing.T) {
	cmd := newVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("expected command name 'version', got %q", cmd.Use)
	}
	if !cmd.HasAlias("v") {
		t.Errorf("expected command to have alias 'v'")
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)
	if !strings.HasPrefix(out.String(), "ttsdesk dev") {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"languages", "say", "version"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestLanguagesCommand_MarksDefault(t *testing.T) {
	testEnv(t)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"languages"})

	if err := root.Execute(); err != nil {
		t.Fatalf("languages failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) < 10 {
		t.Fatalf("Expected the built-in catalog, got %d lines", len(lines))
	}
	if !strings.Contains(out.String(), "* English [en]\n") {
		t.Errorf("Expected English marked as default, got:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[0], "  Afrikaans [af]") {
		t.Errorf("Expected sorted output starting with Afrikaans, got %q", lines[0])
	}
}

func TestLanguagesCommand_CatalogUnreachable(t *testing.T) {
	testEnv(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()
	t.Setenv("TTS_CATALOG_URL", addr)

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"languages"})

	if err := root.Execute(); err == nil {
		t.Error("Expected error when the catalog cannot be fetched")
	}
}

func TestSayCommand(t *testing.T) {
	out := testEnv(t)

	var gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		req := r.PostForm.Get("f.req")
		if strings.Contains(req, `\"fr\"`) {
			gotLang = "fr"
		}
		payload := base64.StdEncoding.EncodeToString([]byte("ID3audio"))
		fmt.Fprintf(w, ")]}'\n"+`[["wrb.fr","jQ1olc","[\"%s\"]",null,null,null,"generic"]]`+"\n", payload)
	}))
	defer srv.Close()
	t.Setenv("TTS_BASE_URL", srv.URL)

	root := newRootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"say", "--lang", "fr", "Bonjour", "le", "monde"})

	if err := root.Execute(); err != nil {
		t.Fatalf("say failed: %v", err)
	}

	path := strings.TrimSpace(stdout.String())
	if filepath.Dir(path) != out {
		t.Errorf("Expected file in %s, got %s", out, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "ID3audio" {
		t.Errorf("unexpected audio %q", data)
	}
	if gotLang != "fr" {
		t.Error("Expected request for language fr")
	}
}

func TestSayCommand_EmptyStdinFails(t *testing.T) {
	testEnv(t)

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetIn(strings.NewReader("   \n"))
	root.SetArgs([]string{"say"})

	err := root.Execute()
	if err == nil {
		t.Fatal("Expected error for empty input")
	}
	if err.Error() != "Please enter some text!" {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestSayCommand_UnknownLanguage(t *testing.T) {
	testEnv(t)

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"say", "--lang", "xx", "hello"})

	err := root.Execute()
	if err == nil || err.Error() != "Language not supported: xx" {
		t.Errorf("unexpected error %v", err)
	}
}
