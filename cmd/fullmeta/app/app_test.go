package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/agentstation/fullmeta/pkg/config"
)

const profileXML = `<?xml version="1.0" encoding="UTF-8"?>
<Profile xmlns="http://soap.sforce.com/2006/04/metadata">
    <userPermissions>
        <enabled>true</enabled>
        <name>ApiEnabled</name>
    </userPermissions>
</Profile>
`

// newTestApp returns an app over an in-memory tree holding one changed
// profile and a metadata config.
func newTestApp(t *testing.T) (*App, afero.Fs) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	data, err := config.Marshal(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	files := map[string][]byte{
		"/repo/cicd/metadata.yaml":                  data,
		"/repo/src/profiles/Admin.profile-meta.xml": []byte(profileXML),
	}
	for path, content := range files {
		if err := afero.WriteFile(fsys, path, content, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithFS(fsys),
		WithConfig(&Config{
			ChangedDir:     "/repo/src",
			FullDir:        "/repo/full",
			MetadataConfig: "/repo/cicd/metadata.yaml",
			LogFormat:      "json",
			LogOutput:      "stderr",
		}),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app, fsys
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Options verifies nil options are rejected.
func TestApp_Options(t *testing.T) {
	if _, err := New("1.0.0", "", "", "", WithFS(nil)); err == nil {
		t.Error("WithFS(nil) accepted")
	}
	if _, err := New("1.0.0", "", "", "", WithConfig(nil)); err == nil {
		t.Error("WithConfig(nil) accepted")
	}
}

// TestApp_Client verifies the client is built from the configuration.
func TestApp_Client(t *testing.T) {
	app, _ := newTestApp(t)

	client, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}
	if client.Metadata().Len() != config.Default().Len() {
		t.Errorf("Metadata().Len() = %d, want %d", client.Metadata().Len(), config.Default().Len())
	}

	app.config.MetadataConfig = "/repo/cicd/missing.yaml"
	if _, err := app.Client(); err == nil {
		t.Error("Client() succeeded without a metadata config")
	}
}

// TestApp_ExecuteSync runs the sync command end to end.
func TestApp_ExecuteSync(t *testing.T) {
	app, fsys := newTestApp(t)

	rootCmd := app.createRootCommand()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"sync", "-o", "yaml"})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "status: seeded") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}

	data, err := afero.ReadFile(fsys, "/repo/full/profiles/Admin.profile-meta.xml")
	if err != nil {
		t.Fatalf("full profile not seeded: %v", err)
	}
	if string(data) != profileXML {
		t.Errorf("seeded profile differs:\n%s", data)
	}
}

// TestApp_InvalidFormat verifies an unknown output format is fatal.
func TestApp_InvalidFormat(t *testing.T) {
	app, _ := newTestApp(t)

	rootCmd := app.createRootCommand()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"types", "-o", "xml"})

	if err := rootCmd.ExecuteContext(context.Background()); err == nil {
		t.Error("invalid format accepted")
	}
}
