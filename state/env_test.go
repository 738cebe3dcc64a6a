package state

import (
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"mdnovx/config"
)

func TestEnvTravelsWithContext(t *testing.T) {
	ctx := ContextWithEnv(context.Background())

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("environment start time not set")
	}

	// the convert action merges command line flags with configuration
	// defaults into the environment; later lookups must see the result
	env.Cfg = &config.Config{Version: 1, Conversion: config.ConversionConfig{Strict: true}}
	env.Strict = env.Cfg.Conversion.Strict
	env.Overwrite = env.Cfg.Conversion.Overwrite

	again := EnvFromContext(ctx)
	if !again.Strict {
		t.Error("strict flag lost between context lookups")
	}
	if again.Overwrite {
		t.Error("overwrite flag set without a source")
	}
}

func TestEnvFromContextPanicsWhenMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestUptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if up := env.Uptime(); up < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", up)
	}
}

func TestStdLogRedirection(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := &LocalEnv{Log: zap.New(core)}

	env.RedirectStdLog()
	if env.restoreStdLog == nil {
		t.Fatal("expected restoreStdLog to be set")
	}
	// etree and friends report through the std logger, those lines must
	// land in our log
	log.Print("conversion sideline")
	env.RestoreStdLog()

	found := false
	for _, e := range logs.All() {
		if e.Message == "conversion sideline" {
			found = true
		}
	}
	if !found {
		t.Error("std log output did not reach the zap logger")
	}
}

func TestStdLogRedirectionWithoutLogger(t *testing.T) {
	env := &LocalEnv{}

	// neither call may panic before logging is prepared
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("expected restoreStdLog to remain nil")
	}
	env.RestoreStdLog()
}
