package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/peterh/liner"

	ari "github.com/FongYoong/ari-lang"
)

const (
	appName     = "ari"
	configFile  = "ari.yaml"
	historyFile = ".ari_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("Ari %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", ari.Version)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "watch":
		os.Exit(cmdWatch(os.Args[2:]))
	case "version":
		fmt.Println(ari.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Ari %s

Usage:
  %s run <file.ari>     Run a script.
  %s repl               Start the REPL.
  %s watch <file.ari>   Run a script and rerun it on every change.
  %s version            Print the version.

Engine tuning is read from an optional %s next to the script
(or in the working directory for the REPL).
`, ari.Version, appName, appName, appName, appName, configFile)
}

// loadConfigNear reads the ari.yaml beside path ("" means the working
// directory). Config problems are warnings, not fatal.
func loadConfigNear(path string) (ari.Config, string) {
	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	cfg, hist, err := ari.LoadConfig(filepath.Join(dir, configFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
	}
	return cfg, hist
}

func runFile(file string) int {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	cfg, _ := loadConfigNear(file)
	ip := ari.NewInterpreter(cfg)
	if _, err := ip.EvalSource(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, red(ari.WrapErrorWithName(err, file, string(src)).Error()))
		return 1
	}
	return 0
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.ari>\n", appName)
		return 2
	}
	return runFile(args[0])
}

func cmdWatch(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s watch <file.ari>\n", appName)
		return 2
	}
	file := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors replace files on
	// save, which would drop a file-level watch.
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	fmt.Println(green(fmt.Sprintf("watching %s (Ctrl+C to stop)", file)))
	runFile(file)

	target := filepath.Clean(file)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Println(green("--- " + file + " changed, rerunning ---"))
			runFile(file)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintln(os.Stderr, red(werr.Error()))
		}
	}
}

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	cfg, histPath := loadConfigNear("")
	if histPath == "" {
		home, _ := os.UserHomeDir()
		histPath = filepath.Join(home, historyFile)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := ari.NewInterpreter(cfg)

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			switch {
			case trimmed == ":quit":
				return 0
			case trimmed == ":reset":
				ip.ResetGlobal()
				fmt.Println(green("global scope cleared"))
			case strings.HasPrefix(trimmed, ":help"):
				replHelp(ip, strings.TrimSpace(strings.TrimPrefix(trimmed, ":help")))
			default:
				fmt.Println("unknown command. Type :quit to exit, :help for help.")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		v, err := ip.EvalSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(ari.WrapErrorWithName(err, "<repl>", code).Error()))
			continue
		}
		if !v.IsNil() {
			fmt.Println(blue(v.Display()))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

func replHelp(ip *ari.Interpreter, topic string) {
	if topic == "" {
		fmt.Println(`REPL commands:
  :quit           Exit the REPL
  :reset          Clear the global scope
  :help <native>  Show help for a native function`)
		names := ip.BuiltinNames()
		sort.Strings(names)
		fmt.Println("\nNatives:\n  " + strings.Join(names, " "))
		return
	}
	if doc, ok := ip.BuiltinDoc(topic); ok {
		fmt.Println(green(doc))
		return
	}
	fmt.Printf("no help for %q\n", topic)
}

// readByParseProbe reads lines until the buffer parses, or fails with a
// non-incomplete error (which the evaluator will then report properly).
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perr := ari.Parse(src)
		if perr == nil {
			return src, true
		}
		if ari.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
