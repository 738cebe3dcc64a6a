package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"mdnovx/config"
	"mdnovx/state"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name: "convert",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "strict"},
			&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}},
		},
		Action: Action,
	}
}

func testContext(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg = &config.Config{Version: 1}
	env.Log = testLogger(t)
	return ctx, env
}

func TestActionConvertsSources(t *testing.T) {
	dir := t.TempDir()
	src := sampleProject(t, dir)

	ctx, env := testContext(t)
	if err := convertCommand().Run(ctx, []string{"convert", "--overwrite", "--strict", src}); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "sample.novx")); err != nil {
		t.Fatalf("target not written: %v", err)
	}
	if !env.Strict || !env.Overwrite {
		t.Error("command line flags not propagated to environment")
	}
}

func TestActionFlagsFromConfiguration(t *testing.T) {
	dir := t.TempDir()
	src := sampleProject(t, dir)

	ctx, env := testContext(t)
	env.Cfg.Conversion.Strict = true
	env.Cfg.Conversion.Overwrite = true
	if err := convertCommand().Run(ctx, []string{"convert", src}); err != nil {
		t.Fatal(err)
	}

	if !env.Strict || !env.Overwrite {
		t.Error("configuration defaults not propagated to environment")
	}
}

func TestActionNoSources(t *testing.T) {
	ctx, _ := testContext(t)
	if err := convertCommand().Run(ctx, []string{"convert"}); err == nil {
		t.Fatal("expected error for empty command line")
	}
}

func TestActionKeepsGoingAfterFailure(t *testing.T) {
	dir := t.TempDir()
	good := sampleProject(t, dir)
	bad := filepath.Join(dir, "missing.mdnov")

	ctx, _ := testContext(t)
	err := convertCommand().Run(ctx, []string{"convert", "--overwrite", bad, good})
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	// the good source is still converted
	if _, err := os.Stat(filepath.Join(dir, "sample.novx")); err != nil {
		t.Fatalf("target not written: %v", err)
	}
}

func TestConsoleUIAskYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		ui := newConsoleUI(strings.NewReader(tt.input), testLogger(t))
		if got := ui.AskYesNo("Overwrite?"); got != tt.want {
			t.Errorf("AskYesNo with input %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConsoleUIStatusRouting(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ui := newConsoleUI(strings.NewReader(""), zap.New(core))

	ui.SetStatus(`File written: "out.novx".`)
	ui.SetStatus("!Action canceled by user.")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	if entries[0].Level != zap.InfoLevel || entries[0].Message != `File written: "out.novx".` {
		t.Errorf("unexpected first entry: %+v", entries[0].Entry)
	}
	if entries[1].Level != zap.ErrorLevel || entries[1].Message != "Action canceled by user." {
		t.Errorf("unexpected second entry: %+v", entries[1].Entry)
	}
}
