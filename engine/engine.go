// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mgordner/mi2run/bkpt"
	"github.com/mgordner/mi2run/frame"
	"github.com/mgordner/mi2run/internal/core"
	"github.com/mgordner/mi2run/mi2"
	"github.com/mgordner/mi2run/mi2/interp"
	"github.com/mgordner/mi2run/mi2/token"
)

// Engine orchestrates the lifetime of one driven debugger session
// (spec.md §4.5). It is not safe for concurrent use; Run is meant to be
// called once.
type Engine struct {
	cfg    Config
	bps    []bkpt.UserBreakpoint
	logger *slog.Logger

	mu     sync.Mutex
	status Status

	exitCode    int
	hasExitCode bool
}

// New builds an Engine from a validated Config, the plugin-supplied
// breakpoint list, and a logger (spec.md §6's plugin surface: "engine
// provides ... an append-only log sink").
func New(cfg Config, breakpoints []bkpt.UserBreakpoint, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		bps:      breakpoints,
		logger:   logger,
		exitCode: -1,
		status:   Status{State: Created, ExitCode: -1},
	}
}

// Status returns a snapshot of the engine's current state, safe to call
// from another goroutine while Run is in progress (for an interactive
// status display; SPEC_FULL.md §2).
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.status.State = s
	e.mu.Unlock()
}

func (e *Engine) setExit(code int) {
	e.mu.Lock()
	e.exitCode, e.hasExitCode = code, true
	e.status.ExitCode, e.status.HasExitCode = code, true
	e.mu.Unlock()
}

// Run drives the engine through its state machine to completion: it
// spawns the debugger, reads its banner, installs breakpoints, starts
// the target, dispatches stop events until exit or watchdog expiry, and
// reports a final exit code.
func (e *Engine) Run(ctx context.Context) (int, error) {
	e.setState(SpawningDebugger)
	proc, err := spawnDebugger(e.cfg.DebuggerPath, e.mi2Args())
	if err != nil {
		e.setState(SpawnFail)
		return -1, &core.SpawnFail{Path: e.cfg.DebuggerPath, Err: err}
	}

	wd := newWatchdog(e.cfg.Timeout, func() {
		e.logger.Warn("watchdog expired, killing debugger", "timeout", e.cfg.Timeout)
		proc.killGroup()
	})
	defer wd.stop()

	stderrLines := make(chan string, 16)
	go func() {
		for line := range stderrLines {
			e.logger.Warn("gdb stderr", "line", line)
		}
	}()
	st := token.New(proc.stdin, proc.stdout, proc.stderr, stderrLines)
	ip := interp.New(st, interp.Sinks{
		Console: func(s string) { wd.kick(); e.logger.Debug("console", "text", s) },
		Log:     func(s string) { wd.kick(); e.logger.Debug("log", "text", s) },
		Target:  func(s string) { wd.kick(); fmt.Fprint(os.Stdout, s) },
		Async:   func(rec mi2.Record) { wd.kick() },
	}, 0)

	e.setState(Banner)
	if info, err := ip.ReadHeader(); err != nil || info.Version == "" {
		e.setState(BadBanner)
		if err == nil {
			err = &core.BadBanner{Banner: "no version line observed"}
		}
		return e.finish(proc, ip, wd, -1, err)
	}
	wd.kick()

	if e.cfg.Exe != "" {
		if err := ip.FileExecAndSymbols(e.cfg.Exe); err != nil {
			return e.finish(proc, ip, wd, -1, err)
		}
		wd.kick()
	}

	e.setState(InstallingBreakpoints)
	byNumber, err := installBreakpoints(ip, e.bps, e.logger)
	if err != nil {
		return e.finish(proc, ip, wd, -1, err)
	}
	e.mu.Lock()
	e.status.Breakpoints = make(map[int]string, len(byNumber))
	for n, b := range byNumber {
		e.status.Breakpoints[n] = b.Identifier()
	}
	e.mu.Unlock()
	wd.kick()

	e.setState(Starting)
	if err := e.start(ip); err != nil {
		return e.finish(proc, ip, wd, -1, err)
	}
	wd.kick()

	code, err := e.dispatch(ctx, ip, byNumber, wd)
	return e.finish(proc, ip, wd, code, err)
}

// mi2Args builds the debugger's argument vector, which is just
// [--interpreter=mi2]; Config has no field for further debugger
// arguments, so none are passed.
func (e *Engine) mi2Args() []string {
	return []string{"--interpreter=mi2"}
}

// start implements the Starting transition: remote-without-init-scripts
// connects and continues; init scripts are fed line-by-line; otherwise a
// plain exec-run starts the target locally. Symbols are already loaded
// by Run (via FileExecAndSymbols, before InstallingBreakpoints), so every
// branch here only ever arranges how the target is launched.
func (e *Engine) start(ip *interp.Interp) error {
	if e.cfg.Remote != "" && len(e.cfg.InitScripts) == 0 {
		if err := ip.TargetSelectRemote(e.cfg.Remote); err != nil {
			return err
		}
		return ip.ExecContinue()
	}
	if len(e.cfg.InitScripts) > 0 {
		for _, path := range e.cfg.InitScripts {
			if err := e.feedInitScript(ip, path); err != nil {
				return err
			}
		}
		if e.cfg.Remote != "" {
			if err := ip.TargetSelectRemote(e.cfg.Remote); err != nil {
				return err
			}
			return ip.ExecContinue()
		}
		return ip.ExecRun()
	}
	if len(e.cfg.Args) > 0 {
		if err := ip.ExecArguments(e.cfg.Args...); err != nil {
			return err
		}
	}
	return ip.ExecRun()
}

// feedInitScript sends each line of an init script through
// interpreter_exec("console", line) individually, so a failing line can
// be attributed precisely (SPEC_FULL.md §4, grounded on the original's
// line-oriented script feed).
func (e *Engine) feedInitScript(ip *interp.Interp, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if err := ip.InterpreterExec("console", line); err != nil {
			return fmt.Errorf("engine: init script %s: line %q: %w", path, line, err)
		}
	}
	return sc.Err()
}

// dispatch implements the Running/Dispatching loop of spec.md §4.5.
func (e *Engine) dispatch(ctx context.Context, ip *interp.Interp, byNumber map[int]bkpt.UserBreakpoint, wd *watchdog) (code int, err error) {
	e.setState(Running)
	for {
		select {
		case <-ctx.Done():
			return -1, ctx.Err()
		default:
		}

		rec, err := ip.WaitForStop()
		if err != nil {
			return -1, err
		}
		wd.kick()
		e.setState(Dispatching)

		ev, err := mi2.DecodeStopEvent(rec.Results)
		if err != nil {
			return -1, err
		}
		e.mu.Lock()
		e.status.LastStop = ev.Reason
		e.mu.Unlock()

		switch ev.Reason {
		case "exited", "exited-normally":
			code := -1
			if ev.HasExitCode {
				code = ev.ExitCode
			}
			return code, nil
		case "breakpoint-hit":
			if err := e.invoke(ip, byNumber, ev); err != nil {
				return -1, err
			}
			if e.hasExitCode {
				return e.exitCode, nil
			}
			if err := ip.ExecContinue(); err != nil {
				return -1, err
			}
			e.setState(Running)
		default:
			e.logger.Warn("unhandled stop reason, treating as exit", "reason", ev.Reason)
			return -1, nil
		}
	}
}

// invoke looks up the user breakpoint that fired, builds the frame
// façade, and calls its Invoke hook. A panic escaping Invoke is caught
// here and turned into a fatal error (spec.md §7).
func (e *Engine) invoke(ip *interp.Interp, byNumber map[int]bkpt.UserBreakpoint, ev mi2.StopEvent) (err error) {
	b, ok := byNumber[ev.BkptNo]
	if !ok {
		e.logger.Warn("stop at unknown breakpoint number", "bkptno", ev.BkptNo)
		return nil
	}
	fr := frame.New(ip, ev.Frame, 0, e.setExit)

	defer func() {
		if r := recover(); r != nil {
			err = &core.PluginPanic{Recovered: r}
		}
	}()
	b.Invoke(fr, ev.Frame.File, ev.Frame.Line)
	return nil
}

// finish implements the Exited transition: it writes the observed exit
// code into the exit slot unless a plugin already claimed it, asks the
// debugger to exit cleanly, waits for the child, and returns the final
// exit precedence per spec.md §3's invariant. If the watchdog had
// already fired, runErr (typically token.ErrDebuggerGone, surfaced once
// the killed child's pipe closes) is replaced by core.Timeout so a
// watchdog kill is distinguishable from an ordinary EOF, and the state
// excursion is Timeout rather than Exited/ReportedExit.
func (e *Engine) finish(proc *spawnedDebugger, ip *interp.Interp, wd *watchdog, observed int, runErr error) (int, error) {
	if wd.hasFired() {
		observed = -1
		runErr = &core.Timeout{Seconds: int(e.cfg.Timeout / time.Second)}
		if !e.hasExitCode {
			e.setExit(observed)
		}
		proc.wait()
		e.setState(Timeout)
		return e.exitCode, runErr
	}
	if !e.hasExitCode {
		e.setExit(observed)
	}
	ip.GdbExit()
	proc.wait()
	e.setState(Exited)
	e.setState(ReportedExit)
	return e.exitCode, runErr
}
