package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/aurora-tools/go-gff/internal/container"
)

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show header and section layout of a GFF file",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("expected exactly one file argument", 1)
			}
			path := cmd.Args().First()

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			c, err := container.Read(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			h := c.Header
			fmt.Printf("file type:    %q\n", h.FileType)
			fmt.Printf("file version: %q\n", h.FileVersion)
			fmt.Println()
			fmt.Printf("%-14s %10s %10s\n", "section", "offset", "count")
			fmt.Printf("%-14s %10d %10d\n", "structs", h.StructOffset, h.StructCount)
			fmt.Printf("%-14s %10d %10d\n", "fields", h.FieldOffset, h.FieldCount)
			fmt.Printf("%-14s %10d %10d\n", "labels", h.LabelOffset, h.LabelCount)
			fmt.Printf("%-14s %10d %10d bytes\n", "field data", h.FieldDataOffset, h.FieldDataCount)
			fmt.Printf("%-14s %10d %10d bytes\n", "field indices", h.FieldIndicesOffset, h.FieldIndicesCount)
			fmt.Printf("%-14s %10d %10d bytes\n", "list indices", h.ListIndicesOffset, h.ListIndicesCount)
			return nil
		},
	}
}
