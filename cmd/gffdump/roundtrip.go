package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/aurora-tools/go-gff/gff"
)

func roundtripCmd() *cli.Command {
	return &cli.Command{
		Name:      "roundtrip",
		Usage:     "Read a GFF file, re-encode it and compare the bytes",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("expected exactly one file argument", 1)
			}
			path := cmd.Args().First()
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			original, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			doc, err := gff.ReadBytes(original)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			rewritten, err := doc.Bytes()
			if err != nil {
				return fmt.Errorf("re-encoding %s: %w", path, err)
			}

			if bytes.Equal(original, rewritten) {
				log.Info("round trip is byte-exact", "path", path, "size", len(original))
				return nil
			}

			log.Error("round trip differs", "path", path,
				"original_size", len(original), "rewritten_size", len(rewritten),
				"first_diff", firstDiff(original, rewritten))
			return cli.Exit("round trip mismatch", 1)
		},
	}
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
