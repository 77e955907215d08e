package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/aurora-tools/go-gff/gff"
	"github.com/aurora-tools/go-gff/tlk"
)

func dumpCmd() *cli.Command {
	var tlkPath string

	return &cli.Command{
		Name:      "dump",
		Usage:     "Dump the resolved tree of a GFF file as JSON",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "tlk",
				Usage:       "talk table for resolving localized string references",
				Destination: &tlkPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("expected exactly one file argument", 1)
			}
			path := cmd.Args().First()
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			var opts []gff.Option
			if tlkPath != "" {
				data, err := os.ReadFile(tlkPath)
				if err != nil {
					return err
				}
				table, err := tlk.Read(bytes.NewReader(data))
				if err != nil {
					return fmt.Errorf("parsing talk table %s: %w", tlkPath, err)
				}
				log.Info("talk table loaded", "path", tlkPath,
					"language", table.Language().String(), "strings", table.NumStrings())
				opts = append(opts, gff.WithResolver(table))
			} else {
				log.Debug("no talk table given, localized string refs left unresolved")
			}

			doc, err := gff.Open(path, opts...)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
