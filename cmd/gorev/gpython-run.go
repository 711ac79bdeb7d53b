package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	_ "github.com/2x3systems/gorev/pyrev"
	_ "github.com/go-python/gpython/stdlib"
)

// replStartup is run in the REPL's module (if present) so its names are at hand interactively.
const replStartup = "lib/_REPL_startup.py"

// runPython runs the given script, or the REPL when scriptPath is empty.
// The gpython context (and with it every _pyrev Session) is closed before returning.
func runPython(scriptPath string) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	if scriptPath == "" {
		return runREPL(ctx)
	}

	if _, err := os.Stat(scriptPath); err != nil {
		return errors.Wrap(err, "script")
	}

	klog.V(1).Infof("running %s", scriptPath)
	start := time.Now()
	if _, err := py.RunFile(ctx, scriptPath, py.CompileOpts{}, nil); err != nil {
		py.TracebackDump(err)
		return errors.Wrapf(err, "running %s", scriptPath)
	}
	fmt.Fprintf(os.Stderr, "%s finished in %v\n", scriptPath, time.Since(start).Round(time.Millisecond))
	return nil
}

func runREPL(ctx py.Context) error {
	replCtx := repl.New(ctx)

	if _, err := os.Stat(replStartup); err == nil {
		if _, err = py.RunFile(ctx, replStartup, py.CompileOpts{}, replCtx.Module); err != nil {
			py.TracebackDump(err)
			return errors.Wrap(err, replStartup)
		}
	}
	cli.RunREPL(replCtx)
	return nil
}
