// Command qgd builds and searches whole-project code search archives.
//
//	qgd build -o project.qgd path/to/project [more/paths ...]
//	qgd search [-i] [-l] [-n] [-vs] project.qgd pattern
package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("qgd: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "qgd: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: qgd build -o <archive> <path> [<path> ...]")
	fmt.Fprintln(os.Stderr, "       qgd search [-i] [-l] [-n] [-vs] <archive> <pattern>")
}
