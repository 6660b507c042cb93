package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe()
	case "posts":
		err = runPosts(os.Args[2:])
	case "import":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: devblog import <dir>")
			os.Exit(1)
		}
		err = runImport(os.Args[2])
	case "version":
		fmt.Printf("devblog %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`devblog - a personal blog served with Go, Echo, and templ

Usage:
  devblog <command> [arguments]

Commands:
  serve              Start the HTTP server
  posts [--tag t]    List registered posts, optionally by tag
  import <dir>       Copy the posts under dir into the SQLite archive
  version            Print the devblog version
  help               Show this help message

Configuration is read from the environment and .env:
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, SITE_AUTHOR, SHARE_HANDLE,
  ADDR, CONTENT_DIR, DATABASE_PATH, AVATAR_PATH, LOAD_TIMEOUT, LOG_LEVEL`)
}
