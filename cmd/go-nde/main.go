package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	gonde "github.com/wilhasse/go-nde"
	"github.com/wilhasse/go-nde/config"
	"github.com/wilhasse/go-nde/schema"
)

var Version = "development"

// app holds what every command needs after the global flags are parsed.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func (a *app) options() []gonde.Option {
	return []gonde.Option{
		gonde.WithLogger(a.log),
		gonde.WithMaxRedirectHops(a.cfg.Decoder.MaxRedirectHops),
		gonde.WithStrictPrimary(a.cfg.Decoder.StrictPrimaryIndex),
		gonde.WithWorkers(a.cfg.Decoder.Workers),
		gonde.WithTable(a.cfg.Export.Table),
	}
}

func tableArgs(c *cli.Context) (string, string, error) {
	if c.NArg() != 2 {
		return "", "", errors.Errorf("%s needs INDEX and DATA file arguments, got %d", c.Command.Name, c.NArg())
	}
	return c.Args().Get(0), c.Args().Get(1), nil
}

func main() {
	a := &app{log: zap.NewNop()}

	cliApp := &cli.App{
		Name:    "go-nde",
		Usage:   "Read Winamp Music Library (NDE) tables",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, TakesFile: true, Usage: "YAML config file (default: go-nde.yaml or configs/go-nde.yaml if present)", EnvVars: []string{"GO_NDE_CONFIG"}},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log at debug level"},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			log, err := cfg.Log.Logger(c.Bool("verbose"))
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		After: func(*cli.Context) error {
			_ = a.log.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "dump",
				Usage:     "Print every decoded field of every record",
				ArgsUsage: "INDEX DATA",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: display, json or sexp"},
				},
				Action: a.dump,
			},
			{
				Name:      "export",
				Usage:     "Convert the tracks of a table into a document",
				ArgsUsage: "INDEX DATA",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: json, sexp, sql or sqlite"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, TakesFile: true, Usage: "Output file; .gz, .zst and .lz4 names are compressed"},
					&cli.IntFlag{Name: "workers", Usage: "Records decoded concurrently"},
					&cli.StringFlag{Name: "table", Usage: "Table name for the sql and sqlite formats"},
				},
				Action: a.export,
			},
			{
				Name:      "schema",
				Usage:     "Print the columns, attribute mapping and index definitions of a table",
				ArgsUsage: "INDEX DATA",
				Action:    a.schema,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) dump(c *cli.Context) error {
	idx, dat, err := tableArgs(c)
	if err != nil {
		return err
	}
	name := a.cfg.Dump.Format
	if c.IsSet("format") {
		name = c.String("format")
	}
	f, err := gonde.ParseDumpFormat(name)
	if err != nil {
		return err
	}
	return gonde.Dump(idx, dat, f, os.Stdout, a.options()...)
}

func (a *app) export(c *cli.Context) error {
	idx, dat, err := tableArgs(c)
	if err != nil {
		return err
	}
	if c.IsSet("format") {
		a.cfg.Export.Format = c.String("format")
	}
	if c.IsSet("output") {
		a.cfg.Export.Output = c.String("output")
	}
	if c.IsSet("workers") {
		a.cfg.Decoder.Workers = c.Int("workers")
	}
	if c.IsSet("table") {
		a.cfg.Export.Table = c.String("table")
	}
	f, err := gonde.ParseExportFormat(a.cfg.Export.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return gonde.Export(ctx, idx, dat, f, a.cfg.Export.Output, a.options()...)
}

func (a *app) schema(c *cli.Context) error {
	idx, dat, err := tableArgs(c)
	if err != nil {
		return err
	}
	t, err := gonde.Open(idx, dat, a.options()...)
	if err != nil {
		return err
	}
	defer t.Close()

	s, err := t.Schema()
	if err != nil {
		return err
	}
	defs, err := t.IndexDefinitions()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tUNIQUE\tATTRIBUTE")
	for _, col := range s.Columns {
		attr := "-"
		if col.Mapped {
			attr = col.Attribute.Key()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", col.ID, col.Name, col.Kind, col.Unique, attr)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tPOSITION\tTYPE\tRECORDS")
	for _, d := range defs {
		records := "-"
		for _, x := range t.Indices() {
			if x.ID() == uint32(d.ID) {
				records = fmt.Sprint(x.Len())
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", d.ID, d.Name, d.Position, d.Type, records)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%s;\n", schema.SQL(schema.CreateTable(a.cfg.Export.Table, s.TableAttributes())))
	return nil
}
