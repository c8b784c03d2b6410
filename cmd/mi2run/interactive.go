// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/mgordner/mi2run/engine"
)

// runInteractive drives the engine in the background while a readline
// console accepts the built-in commands 'status' (a bubbletea screen
// summarizing engine.Status()) and 'quit'/'exit'; other input, MI
// commands included, is rejected.
func runInteractive(ctx context.Context, eng *engine.Engine) error {
	done := make(chan struct {
		code int
		err  error
	}, 1)
	go func() {
		code, err := eng.Run(ctx)
		done <- struct {
			code int
			err  error
		}{code, err}
	}()

	rl, err := readline.New("(mi2run) ")
	if err != nil {
		return fmt.Errorf("mi2run: interactive console: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stderr(), "mi2run interactive console: 'status' shows the live summary screen, 'quit' exits")
	for {
		select {
		case r := <-done:
			if r.err != nil {
				return r.err
			}
			fmt.Fprintf(rl.Stderr(), "target exited with code %d\n", r.code)
			return nil
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "status":
			if _, err := tea.NewProgram(newStatusModel(eng)).Run(); err != nil {
				fmt.Fprintf(rl.Stderr(), "status screen: %v\n", err)
			}
		default:
			fmt.Fprintln(rl.Stderr(), "unrecognized console command (only 'status' and 'quit' are built in)")
		}
	}
}

// statusModel is a bubbletea model rendering one snapshot of
// engine.Status(), refreshed on a short tick so the operator sees the
// dispatch loop advance without driving any MI traffic themselves.
type statusModel struct {
	eng    *engine.Engine
	status engine.Status
}

func newStatusModel(eng *engine.Engine) statusModel {
	return statusModel{eng: eng, status: eng.Status()}
}

type statusTickMsg time.Time

func (m statusModel) Init() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return statusTickMsg(t) })
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case statusTickMsg:
		m.status = m.eng.Status()
		return m, tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return statusTickMsg(t) })
	}
	return m, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func (m statusModel) View() string {
	rows := make([]table.Row, 0, len(m.status.Breakpoints))
	for n, ident := range m.status.Breakpoints {
		rows = append(rows, table.Row{fmt.Sprintf("%d", n), ident})
	}
	t := table.New(
		table.WithColumns([]table.Column{{Title: "#", Width: 4}, {Title: "Identifier", Width: 24}}),
		table.WithRows(rows),
	)

	exit := "(none yet)"
	if m.status.HasExitCode {
		exit = fmt.Sprintf("%d", m.status.ExitCode)
	}

	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render("mi2run status"))
	fmt.Fprintf(&b, "state: %s\nlast stop: %s\nexit code: %s\n\n", m.status.State, m.status.LastStop, exit)
	b.WriteString(t.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("press q to return to the console"))
	return b.String()
}
