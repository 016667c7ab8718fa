// This is the main-driver for our compiler.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/skx/cc9/compiler"
)

func main() {

	//
	// Look for flags.
	//
	debug := flag.Bool("debug", false, "Insert debug \"stuff\" in our generated output.")
	compileFlag := flag.Bool("compile", false, "Compile the program, via invoking gcc.")
	program := flag.String("filename", "a.out", "The binary to write to.")
	run := flag.Bool("run", false, "Run the binary, post-compile.")
	repl := flag.Bool("repl", false, "Start an interactive read-compile-print loop instead.")
	flag.Parse()

	//
	// If we're running we're also compiling
	//
	if *run {
		*compileFlag = true
	}

	if *repl {
		startRepl()
		return
	}

	//
	// Ensure we have a source program as our single argument.
	//
	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: cc9 'int main() { ... }'\n")
		os.Exit(1)
	}

	out, err := compileSource(flag.Args()[0], *debug)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}

	//
	// If we're not compiling the assembly language text which was
	// produced then we just write the program to STDOUT, and terminate.
	//
	if !*compileFlag {
		fmt.Printf("%s", out)
		return
	}

	if err := assembleAndMaybeRun(out, *program, *run); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// compileSource runs one source program through the compiler, returning
// the generated assembly or the first diag.Error encountered.
func compileSource(source string, debug bool) (string, error) {
	comp := compiler.New(source)
	if debug {
		comp.SetDebug(true)
	}
	return comp.Compile()
}

// reportError prints a compile error the way the CLI contract requires:
// the message and the offending source line in the default color, and the
// caret pointing at the fault in red. A diag.Error always renders as
// exactly three lines (message, source line, caret); anything else is
// printed as-is.
func reportError(err error) {
	lines := strings.Split(strings.TrimRight(err.Error(), "\n"), "\n")
	if len(lines) != 3 {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		return
	}

	fmt.Fprintf(os.Stderr, "%s\n%s\n", lines[0], lines[1])
	color.New(color.FgRed).Fprintf(os.Stderr, "%s\n", lines[2])
}

// assembleAndMaybeRun pipes generated assembly into gcc, producing a
// binary at path, and optionally executes that binary.
func assembleAndMaybeRun(assembly, path string, run bool) error {
	gcc := exec.Command("gcc", "-static", "-o", path, "-x", "assembler", "-")
	gcc.Stdout = os.Stdout
	gcc.Stderr = os.Stderr

	var b bytes.Buffer
	b.WriteString(assembly)
	gcc.Stdin = &b

	if err := gcc.Run(); err != nil {
		return fmt.Errorf("error launching gcc: %s", err)
	}

	if !run {
		return nil
	}

	exe := exec.Command(path)
	exe.Stdout = os.Stdout
	exe.Stderr = os.Stderr
	if err := exe.Run(); err != nil {
		return fmt.Errorf("error launching %s: %s", path, err)
	}
	return nil
}

// startRepl reads one source program per line and compiles each
// independently, printing the resulting assembly or a diagnostic.
func startRepl() {
	rl, err := readline.New("cc9> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start readline: %s\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	cyan := color.New(color.FgCyan)
	cyan.Println("cc9 interactive mode — one function per line, Ctrl-D to quit.")

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		rl.SaveHistory(line)

		out, err := compileSource(line, false)
		if err != nil {
			reportError(err)
			continue
		}
		fmt.Print(out)
	}
}
