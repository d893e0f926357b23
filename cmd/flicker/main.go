// flicker - chipTAN optical codec CLI tool
//
// Usage:
//
//	flicker encode [challenge]    Print the symbol table for a challenge
//	flicker play [flags] [challenge]
//	                              Play the flicker animation in the terminal
//	flicker version               Print version info
//
// Play flags:
//
//	--delay=N    Tick interval in milliseconds (10-1000, default 50)
//	--width=N    Bar width in cells/10 (10-80, default 44)
//	--loops=N    Stop after N full cycles (default: run until interrupted)
//
// If no challenge is given, the first line of stdin is used.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/Neumenon/flicker/anim"
	"github.com/Neumenon/flicker/flicker"
)

const libVersion = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	// Parse flags and the challenge argument
	delayMS := int(anim.DefaultDelay / time.Millisecond)
	width := flicker.DefaultBarWidth
	loops := 0
	challengeArg := ""
	for _, arg := range os.Args[2:] {
		switch {
		case strings.HasPrefix(arg, "--delay="):
			if n, err := parseIntArg(arg, "--delay="); err == nil {
				delayMS = n
			}
		case strings.HasPrefix(arg, "--width="):
			if n, err := parseIntArg(arg, "--width="); err == nil {
				width = n
			}
		case strings.HasPrefix(arg, "--loops="):
			if n, err := parseIntArg(arg, "--loops="); err == nil {
				loops = n
			}
		default:
			if !strings.HasPrefix(arg, "-") {
				challengeArg = arg
			}
		}
	}

	switch cmd {
	case "encode":
		challenge := readChallenge(challengeArg)
		if err := flicker.WriteTable(os.Stdout, flicker.Encode(challenge)); err != nil {
			fatal("encode: %v", err)
		}
	case "play":
		challenge := readChallenge(challengeArg)
		cfg := anim.Config{
			BarWidth: width,
			Delay:    time.Duration(delayMS) * time.Millisecond,
		}
		if err := cfg.Validate(); err != nil {
			fatal("%v", err)
		}
		cmdPlay(challenge, cfg, loops)
	case "version":
		fmt.Printf("flicker %s (chipTAN optical)\n", libVersion)
	default:
		fmt.Fprintf(os.Stderr, "flicker: unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

// readChallenge returns the argument, or the first stdin line if empty.
func readChallenge(arg string) string {
	if arg != "" {
		return arg
	}
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		fatal("no challenge given")
	}
	return strings.TrimSpace(scanner.Text())
}

// cmdPlay drives a session and draws the five bars in place with block
// characters, one terminal row per frame state.
func cmdPlay(challenge string, cfg anim.Config, loops int) {
	table := flicker.Encode(challenge)
	framesPerCycle := 2 * table.Len()

	// Bar width in terminal cells, scaled down from pixels.
	cells := cfg.BarWidth / 10
	if cells < 1 {
		cells = 1
	}
	on := strings.Repeat("█", cells)
	off := strings.Repeat("·", cells)

	done := make(chan struct{})
	frames := 0
	render := func(f flicker.Frame) {
		var row strings.Builder
		row.WriteByte('\r')
		for i := 0; i < flicker.BarCount; i++ {
			if i > 0 {
				row.WriteByte(' ')
			}
			if f.Bit(i) {
				row.WriteString(on)
			} else {
				row.WriteString(off)
			}
		}
		fmt.Print(row.String())

		frames++
		if loops > 0 && frames >= loops*framesPerCycle {
			select {
			case <-done:
			default:
				close(done)
			}
		}
	}

	sched := anim.NewTickerScheduler()
	session, err := anim.StartSession(challenge, cfg, sched, render)
	if err != nil {
		fatal("start session: %v", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	select {
	case <-interrupt:
	case <-done:
	}
	session.Stop()
	fmt.Println()
}

func parseIntArg(arg, prefix string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(arg, prefix))
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "flicker: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `flicker - chipTAN optical codec CLI

Usage:
  flicker encode [challenge]           Print the symbol table for a challenge
  flicker play [flags] [challenge]     Play the flicker animation in the terminal
  flicker version                      Print version info

Play flags:
  --delay=N    Tick interval in milliseconds (10-1000, default 50)
  --width=N    Bar width (10-80, default 44)
  --loops=N    Stop after N full cycles (default: run until interrupted)

If no challenge is given, the first line of stdin is used.`)
}
