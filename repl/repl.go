/*
File    : rascal-compiler/repl/repl.go
Author  : Sergio Cezar

Package repl implements the interactive front end of the Rascal
compiler. Users type a program line by line; when a line ends with the
program terminator '.', the accumulated buffer is compiled and the MEPA
listing (or the diagnostics) is printed. The loop then resets and waits
for the next program.

The REPL uses the readline library for line editing and history, and
colored output to separate results from diagnostics.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/SergioCezar/rascal-compiler/compiler"
)

// Color definitions for REPL output:
// - blueColor: Decorative lines and separators
// - yellowColor: Emitted MEPA listings
// - redColor: Stage diagnostics
// - greenColor: Banner and success messages
// - cyanColor: Informational messages and instructions
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents one interactive session's configuration.
type Repl struct {
	Banner  string // ASCII art banner displayed at startup
	Version string // Version string of the compiler
	Author  string // Author information
	Line    string // Separator line for visual formatting
	License string // Software license information
	Prompt  string // Command prompt shown to the user
}

// NewRepl creates and initializes a new REPL instance.
func NewRepl(banner string, version string, author string, line string, license string, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to the Rascal compiler!")
	cyanColor.Fprintf(writer, "%s\n", "Type a program line by line; the final '.' compiles it to MEPA")
	cyanColor.Fprintf(writer, "%s\n", "Type '.clear' to discard the current buffer, '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate line history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop. Lines accumulate into a program
// buffer; a line ending in '.' completes the program and triggers
// compilation. The loop continues until the user types '.exit' or the
// input reaches EOF (Ctrl+D).
func (r *Repl) Start(reader io.Reader, writer io.Writer) {

	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	// Program buffer: lines of the program being typed
	buffer := []string{}

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or readline error (e.g. Ctrl+D)
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}

		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		if line == ".clear" {
			buffer = buffer[:0]
			cyanColor.Fprintf(writer, "%s\n", "Buffer cleared")
			continue
		}
		if line == ".help" {
			cyanColor.Fprintf(writer, "%s\n", "Type a Rascal program; the final '.' compiles it")
			cyanColor.Fprintf(writer, "%s\n", "Commands: .clear  .help  .exit")
			continue
		}

		rl.SaveHistory(line)
		buffer = append(buffer, line)

		// The program terminator completes the buffer
		if strings.HasSuffix(line, ".") {
			r.compileBuffer(writer, strings.Join(buffer, "\n"))
			buffer = buffer[:0]
		}
	}
}

// compileBuffer runs the accumulated program through the pipeline and
// prints the MEPA listing (yellow) or the failing stage's diagnostics
// (red). Unlike file mode, the REPL continues after errors so the user
// can correct the program and try again.
func (r *Repl) compileBuffer(writer io.Writer, source string) {
	code, err := compiler.Compile(source)
	if err != nil {
		report := err.(*compiler.CompileError)
		for _, msg := range report.Messages {
			redColor.Fprintf(writer, "%s\n", msg)
		}
		redColor.Fprintf(writer, "%s error detected. Compilation aborted.\n", report.Stage)
		return
	}
	yellowColor.Fprintf(writer, "%s\n", code)
	greenColor.Fprintf(writer, "%s\n", "OK")
}
