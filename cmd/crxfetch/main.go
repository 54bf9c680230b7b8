package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("crxfetch %s\n", Version)
			return
		case "fetch":
			if err := runFetch(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "sync":
			if err := runSync(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "help", "--help", "-h":
			printHelp()
			return
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	printHelp()
}

func printHelp() {
	fmt.Println("crxfetch - download Chrome extensions and convert them to ZIP archives")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  crxfetch fetch <extension-id-or-store-url>   Download and convert one extension")
	fmt.Println("  crxfetch sync                                Download every extension from crxfetch.lua")
	fmt.Println("  crxfetch --version                           Show version information")
	fmt.Println()
	fmt.Println("Run 'crxfetch fetch --help' or 'crxfetch sync --help' for command flags.")
}
