/*
File    : rascal-compiler/main.go
Author  : Sergio Cezar

Package main is the entry point for the Rascal compiler.
It provides three modes of operation:
 1. File Mode: compile a Rascal source file to a MEPA assembly file
 2. REPL Mode (no arguments): interactive compile loop
 3. Server Mode: serve the REPL over TCP, one session per client

The compiler uses a lexer-parser-analyzer-generator pipeline; each
stage aborts the run with its own diagnostics before the next stage
starts.
*/
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/fatih/color"

	"github.com/SergioCezar/rascal-compiler/compiler"
	"github.com/SergioCezar/rascal-compiler/file"
	"github.com/SergioCezar/rascal-compiler/repl"
)

// VERSION represents the current version of the Rascal compiler
var VERSION = "v1.0.0"

// AUTHOR contains the author information shown by the banner
var AUTHOR = "Sergio Cezar"

// LICENCE specifies the software license (MIT License)
var LICENCE = "MIT"

// PROMPT is the command prompt displayed in REPL mode
var PROMPT = "rascal >>> "

// BANNER is the ASCII art logo displayed when starting the REPL
var BANNER = `
 ██▀███   ▄▄▄        ██████  ▄████▄   ▄▄▄       ██▓
▓██ ▒ ██▒▒████▄    ▒██    ▒ ▒██▀ ▀█  ▒████▄    ▓██▒
▓██ ░▄█ ▒▒██  ▀█▄  ░ ▓██▄   ▒▓█    ▄ ▒██  ▀█▄  ▒██░
▒██▀▀█▄  ░██▄▄▄▄██   ▒   ██▒▒▓▓▄ ▄██▒░██▄▄▄▄██ ▒██░
░██▓ ▒██▒ ▓█   ▓██▒▒██████▒▒▒ ▓███▀ ░ ▓█   ▓██▒░██████▒
░ ▒▓ ░▒▓░ ▒▒   ▓▒█░▒ ▒▓▒ ▒ ░░ ░▒ ▒  ░ ▒▒   ▓▒█░░ ▒░▓  ░
`

// LINE is a separator line used for visual formatting in the REPL
var LINE = "----------------------------------------------------------------"

// Color definitions for driver output:
// - redColor: Stage diagnostics and abort messages
// - greenColor: The success line
// - yellowColor: Usage details
// - cyanColor: Informational messages
var (
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// main is the entry point of the Rascal compiler.
//
// Usage:
//
//	rascal <input.ras> <output.mepa> [-pp]  - Compile a source file
//	rascal                                  - Start REPL mode
//	rascal server <port>                    - Serve the REPL over TCP
//	rascal --help                           - Display help information
//	rascal --version                        - Display version information
//
// The optional -pp flag prints the annotated AST to standard output
// after a clean semantic pass.
func main() {
	if len(os.Args) > 1 {
		arg := os.Args[1]

		// Handle --help flag
		if arg == "--help" || arg == "-h" {
			showHelp()
			os.Exit(0)
		}

		// Handle --version flag
		if arg == "--version" || arg == "-v" {
			showVersion()
			os.Exit(0)
		}

		// Server mode: serve the REPL over TCP
		if arg == "server" {
			if len(os.Args) < 3 {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] Missing port for server mode. Usage: rascal server <port>\n")
				os.Exit(1)
			}
			startServer(os.Args[2])
			return
		}

		// File mode needs both the input and the output path
		if len(os.Args) < 3 {
			showHelp()
			os.Exit(1)
		}
		infile := os.Args[1]
		outfile := os.Args[2]
		printAST := len(os.Args) > 3 && os.Args[3] == "-pp"
		compileFile(infile, outfile, printAST)
	} else {
		// REPL mode: interactive compile loop
		repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
		repler.Start(os.Stdin, os.Stdout)
	}
}

// compileFile runs the whole pipeline for one source file:
// read source, compile, optionally pretty-print the annotated AST,
// write the MEPA output. A failing compilation stage prints its
// diagnostics and an abort line; a failing file read or write prints
// its IO error. Either way the process exits with code 1.
func compileFile(infile string, outfile string, printAST bool) {
	source, err := file.ReadSource(infile)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	comp := compiler.NewCompiler(source)
	if !comp.Compile() {
		for _, msg := range comp.Errors {
			redColor.Fprintf(os.Stderr, "%s\n", msg)
		}
		redColor.Fprintf(os.Stderr, "%s error detected. Compilation aborted.\n", comp.FailedStage)
		os.Exit(1)
	}

	// Only print the AST once every stage before codegen is clean
	if printAST {
		printer := &PrintingVisitor{}
		comp.Root.Accept(printer)
		fmt.Println("--- AST ---")
		fmt.Print(printer)
		fmt.Println("-----------")
	}

	if err := file.WriteOutput(outfile, comp.Code); err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	greenColor.Printf("Success! Wrote '%s'\n", outfile)
}

// showHelp displays the help information for the Rascal compiler
func showHelp() {
	cyanColor.Println("Rascal - A Pascal-like language compiled to MEPA assembly")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  rascal <input.ras> <output.mepa> [-pp]   Compile a source file")
	yellowColor.Println("  rascal                                   Start interactive REPL mode")
	yellowColor.Println("  rascal server <port>                     Serve the REPL on a TCP port")
	yellowColor.Println("  rascal --help                            Display this help message")
	yellowColor.Println("  rascal --version                         Display version information")
	cyanColor.Println("")
	cyanColor.Println("FLAGS:")
	yellowColor.Println("  -pp                                      Print the annotated AST")
	cyanColor.Println("")
	cyanColor.Println("EXAMPLES:")
	yellowColor.Println("  rascal samples/fact.ras fact.mepa")
	yellowColor.Println("  rascal samples/fact.ras fact.mepa -pp")
}

// showVersion displays the version information for the Rascal compiler
func showVersion() {
	cyanColor.Println("Rascal - A Pascal-like language compiled to MEPA assembly")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENCE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// startServer serves the REPL over TCP, one goroutine per client.
func startServer(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] Failed to start server on port %s: %v\n", port, err)
		os.Exit(1)
	}
	cyanColor.Printf("Rascal REPL server listening on :%s\n", port)
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] Failed to accept connection: %v\n", err)
			continue
		}
		go handleClient(conn)
	}
}

// handleClient runs one REPL session over a client connection.
func handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("New client connected from %s\n", conn.RemoteAddr())
	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
	repler.Start(conn, conn)
	cyanColor.Printf("Client disconnected from %s\n", conn.RemoteAddr())
}
