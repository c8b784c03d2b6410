// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mgordner/mi2run/bkpt"
	"github.com/mgordner/mi2run/engine"
	"github.com/mgordner/mi2run/examples/exitcode"
	"github.com/mgordner/mi2run/examples/newlib"
	"github.com/mgordner/mi2run/internal/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd is the thinnest possible cobra command (SPEC_FULL.md §1,
// grounded on cmd/viewcore/objref.go's runObjref(cmd *cobra.Command,
// args []string) shape): it reads flags, folds in any mi2run.yaml
// config file found via viper, builds an engine.Config, and runs it.
var rootCmd = &cobra.Command{
	Use:   "mi2run [flags] -- exe [exe-args...]",
	Short: "Drive a debugger's MI2 interpreter against a target program",
	RunE:  runRoot,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("debugger", "gdb", "debugger binary to launch in --interpreter=mi2 mode")
	flags.String("remote", "", "host:port to target-select remote instead of running locally")
	flags.StringSlice("init-script", nil, "init script to feed line-by-line before running (repeatable)")
	flags.Duration("timeout", engine.DefaultTimeout, "watchdog interval; any debugger I/O resets it")
	flags.String("log-file", "", "append-only log file, in addition to stderr")
	flags.Bool("interactive", false, "open an interactive console instead of running to completion")
	flags.Bool("newlib-syscalls", false, "install the newlib syscall-simulation breakpoints")
	flags.String("config", "", "path to a mi2run.yaml config file (defaults searched in .)")

	viper.SetEnvPrefix("MI2RUN")
	viper.AutomaticEnv()
	viper.BindPFlags(flags)
}

func loadConfigFile(path string) error {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("mi2run")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	err := viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}
	return err
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := loadConfigFile(viper.GetString("config")); err != nil {
		return fmt.Errorf("mi2run: reading config: %w", err)
	}

	var exe string
	var exeArgs []string
	if len(args) > 0 {
		exe, exeArgs = args[0], args[1:]
	}

	cfg, err := engine.NewConfig(engine.Config{
		DebuggerPath: viper.GetString("debugger"),
		Exe:          exe,
		Args:         exeArgs,
		Timeout:      viper.GetDuration("timeout"),
		Remote:       viper.GetString("remote"),
		InitScripts:  viper.GetStringSlice("init-script"),
		LogPath:      viper.GetString("log-file"),
	})
	if err != nil {
		return err
	}

	logger, closeLog, err := core.NewLogger(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("mi2run: opening log file: %w", err)
	}
	defer closeLog()

	breakpoints := []bkpt.UserBreakpoint{exitcode.New()}
	if viper.GetBool("newlib-syscalls") {
		breakpoints = append(breakpoints, newlib.Breakpoints()...)
	}

	eng := engine.New(cfg, breakpoints, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if viper.GetBool("interactive") {
		return runInteractive(ctx, eng)
	}

	code, err := eng.Run(ctx)
	if err != nil {
		return err
	}
	os.Exit(code)
	return nil
}
