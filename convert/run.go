package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mdnovx/state"
)

// Action is the entry point of the convert subcommand. Every argument is a
// source file, conversions run one after another and failures do not stop the
// remaining sources.
func Action(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log

	if cmd.Args().Len() == 0 {
		return errors.New("no input source has been specified")
	}

	env.Strict = cmd.Bool("strict") || env.Cfg.Conversion.Strict
	env.Overwrite = cmd.Bool("overwrite") || env.Cfg.Conversion.Overwrite

	c := New(newConsoleUI(os.Stdin, log.Named("ui")), env.Strict, env.Overwrite, log)

	log.Info("Processing starting", zap.Strings("sources", cmd.Args().Slice()), zap.Bool("strict", env.Strict))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var err error
	for _, src := range cmd.Args().Slice() {
		if e := ctx.Err(); e != nil {
			return multierr.Append(err, e)
		}
		abs, e := filepath.Abs(src)
		if e != nil {
			err = multierr.Append(err, e)
			continue
		}
		if e := env.Rpt.StoreCopy("sources/"+filepath.Base(abs), abs); e != nil {
			log.Warn("Unable to store source in debug report", zap.String("source", abs), zap.Error(e))
		}
		if e := c.Run(abs); e != nil {
			err = multierr.Append(err, e)
			continue
		}
		if target, ok := TargetPath(abs); ok {
			if e := env.Rpt.StoreCopy("results/"+filepath.Base(target), target); e != nil {
				log.Warn("Unable to store result in debug report", zap.String("result", target), zap.Error(e))
			}
		}
	}
	return err
}

// consoleUI answers overwrite questions from the terminal and routes status
// lines to the logger.
type consoleUI struct {
	in  *bufio.Reader
	log *zap.Logger
}

func newConsoleUI(in io.Reader, log *zap.Logger) *consoleUI {
	return &consoleUI{in: bufio.NewReader(in), log: log}
}

func (ui *consoleUI) AskYesNo(question string) bool {
	fmt.Fprintf(os.Stdout, "%s [y/N] ", question)
	line, err := ui.in.ReadString('\n')
	if err != nil && len(line) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (ui *consoleUI) SetStatus(message string) {
	if rest, ok := strings.CutPrefix(message, "!"); ok {
		ui.log.Error(rest)
		return
	}
	ui.log.Info(message)
}
