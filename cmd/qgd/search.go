package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/qgdtools/qgd/search"
)

func runSearch(args []string) error {
	fset := flag.NewFlagSet("search", flag.ExitOnError)
	ignoreCase := fset.Bool("i", false, "case-insensitive match")
	literal := fset.Bool("l", false, "match pattern as a plain substring, not a regular expression")
	printColumn := fset.Bool("n", false, "include the matched column in output")
	visualStudio := fset.Bool("vs", false, "use VisualStudio-style \"path(line,col):\" output")

	if err := fset.Parse(args); err != nil {
		return err
	}

	if fset.NArg() != 2 {
		fset.Usage()
		return fmt.Errorf("qgd search: expected <archive> <pattern>")
	}

	archivePath, pattern := fset.Arg(0), fset.Arg(1)

	var opts []search.Option
	if *ignoreCase {
		opts = append(opts, search.WithIgnoreCase())
	}
	if *literal {
		opts = append(opts, search.WithLiteral())
	}
	if *printColumn {
		opts = append(opts, search.WithPrintColumn())
	}
	if *visualStudio {
		opts = append(opts, search.WithVisualStudio())
	}

	s, err := search.New(pattern, opts...)
	if err != nil {
		return fmt.Errorf("qgd search: %w", err)
	}

	return s.SearchFile(context.Background(), archivePath, os.Stdout)
}
