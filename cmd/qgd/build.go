package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/qgdtools/qgd/builder"
	"github.com/qgdtools/qgd/format"
)

// ignoredDirs are skipped outright while walking a project tree; none of
// these ever hold source worth indexing and .git in particular can be
// enormous.
var ignoredDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
}

func runBuild(args []string) error {
	fset := flag.NewFlagSet("build", flag.ExitOnError)
	out := fset.String("o", "", "output archive path (required)")
	target := fset.Int("target", builder.DefaultTargetChunkSize, "target uncompressed chunk size in bytes")
	codec := fset.String("codec", "lz4", "chunk codec: none, lz4, s2, or zstd")
	quiet := fset.Bool("q", false, "suppress progress output")

	if err := fset.Parse(args); err != nil {
		return err
	}

	if *out == "" || fset.NArg() == 0 {
		fset.Usage()
		return fmt.Errorf("qgd build: -o and at least one path are required")
	}

	compression, err := parseCodec(*codec)
	if err != nil {
		return err
	}

	files, err := collectFiles(fset.Args())
	if err != nil {
		return err
	}

	opts := []builder.Option{
		builder.WithTargetChunkSize(*target),
		builder.WithCompression(compression),
	}

	if !*quiet {
		opts = append(opts, builder.WithProgress(func(stats builder.Statistics) {
			fmt.Fprintf(os.Stderr, "\rqgd: %d chunks, %d files, %d -> %d bytes",
				stats.ChunkCount, stats.FileCount, stats.FileSize, stats.ResultSize)
		}))
	}

	stats, err := builder.BuildToFile(*out, files, opts...)
	if err != nil {
		return err
	}

	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	fmt.Printf("qgd: wrote %s (%d chunks, %d files, %d bytes -> %d bytes)\n",
		*out, stats.ChunkCount, stats.FileCount, stats.FileSize, stats.ResultSize)

	return nil
}

func parseCodec(name string) (format.CompressionType, error) {
	switch name {
	case "none":
		return format.CompressionNone, nil
	case "lz4":
		return format.CompressionLZ4, nil
	case "s2":
		return format.CompressionS2, nil
	case "zstd":
		return format.CompressionZstd, nil
	default:
		return 0, fmt.Errorf("qgd build: unknown codec %q", name)
	}
}

// collectFiles walks every root and returns a FileInfo for each regular
// file found, skipping ignoredDirs entirely.
func collectFiles(roots []string) ([]builder.FileInfo, error) {
	var files []builder.FileInfo

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if ignoredDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}

			files = append(files, builder.FileInfo{
				Path:     path,
				MTime:    uint64(info.ModTime().Unix()),
				FileSize: uint64(info.Size()),
			})

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("qgd build: walk %s: %w", root, err)
		}
	}

	return files, nil
}
