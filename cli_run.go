// cli_run.go - "run" subcommand: clock an SM against a tiny built-in
// test program, optionally reading single-keystroke debug commands from
// a raw terminal.

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hyfloac/softgpu/internal/shim"
)

var (
	runTicks       int
	runInteractive bool
	runDebug       bool
)

// stderrDebugSink is a DebugSink that prints one line per tick to
// stderr: how many units are busy and each dispatch port's current base
// registers, the same kind of terse per-tick line the teacher's
// attached monitors print for CPU ticks.
type stderrDebugSink struct{}

func (stderrDebugSink) ReportTick(info TickInfo) {
	busy := 0
	for _, u := range info.Units {
		if u.Busy {
			busy++
		}
	}
	fmt.Fprintf(os.Stderr, "sm%d: tick start, %d/%d units busy, dispatch0 base=%v dispatch1 base=%v\n",
		info.SMIndex, busy, len(info.Units), info.BaseRegisters[0], info.BaseRegisters[1])
}

// demoProgram adds two registers into a third, then halts. It is
// deliberately tiny: its only job is to exercise dispatch, a functional
// unit's full latency countdown, and a register-file commit end to end.
func demoProgram() Program {
	return Program{
		{Unit: UnitFP, Index: 0, Src: [2]uint32{0, 1}, Dst: 2},
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Clock an SM against a small built-in test program",
	RunE: func(cmd *cobra.Command, args []string) error {
		recovery := shim.New()
		recovery.Init()
		defer recovery.Recover()

		processor, err := NewSimpleProcessor(1 << 20)
		if err != nil {
			return err
		}
		sm := NewStreamingMultiprocessor(processor, 0)
		if runDebug {
			sm.Attach(stderrDebugSink{})
			defer sm.Detach()
		}

		sm.TestLoadRegister(0, 0, 0, 10)
		sm.TestLoadRegister(0, 0, 1, 32)
		sm.TestLoadProgram(0, 0b0001, demoProgram())

		if runInteractive {
			return runInteractiveLoop(sm)
		}

		for i := 0; i < runTicks; i++ {
			sm.Clock()
		}
		fmt.Printf("register[2] = %d\n", sm.GetRegister(2))
		return nil
	},
}

// runInteractiveLoop reads single keystrokes from a raw terminal: 'c'
// clocks the SM once, 'r' prints register 2, 'q' quits. It degrades to
// a line-buffered reader when stdin is not a terminal (e.g. piped
// input in CI), matching the teacher's terminal_host.go fallback.
func runInteractiveLoop(sm *StreamingMultiprocessor) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return runLineLoop(sm)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return runLineLoop(sm)
	}
	defer term.Restore(fd, oldState)

	fmt.Println("interactive mode: c=clock, r=read register 2, q=quit")
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return nil
		}
		switch buf[0] {
		case 'c':
			sm.Clock()
			fmt.Print("\r\nclocked\r\n")
		case 'r':
			fmt.Printf("\r\nregister[2] = %d\r\n", sm.GetRegister(2))
		case 'q':
			fmt.Print("\r\n")
			return nil
		}
	}
}

func runLineLoop(sm *StreamingMultiprocessor) error {
	fmt.Println("interactive mode (line-buffered): c=clock, r=read register 2, q=quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch scanner.Text() {
		case "c":
			sm.Clock()
			fmt.Println("clocked")
		case "r":
			fmt.Printf("register[2] = %d\n", sm.GetRegister(2))
		case "q":
			return nil
		}
	}
	return scanner.Err()
}

func init() {
	runCmd.Flags().IntVar(&runTicks, "ticks", 4, "number of SM clock ticks to run")
	runCmd.Flags().BoolVar(&runInteractive, "interactive", false, "read debug commands from a raw terminal")
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "attach a DebugSink that prints one line per clock tick to stderr")
	rootCmd.AddCommand(runCmd)
}
