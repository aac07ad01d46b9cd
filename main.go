package main

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:      "arrayv-music",
		Usage:     "turn a MIDI file into an ArrayV sort that plays it",
		ArgsUsage: "<file.mid>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "JSON or YAML config file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output path (default <class>.java)"},
			&cli.BoolFlag{Name: "patched", Usage: "target the patched ArrayV (Delays.sleep, fractional ms)"},
			&cli.BoolFlag{Name: "v4", Usage: "target ArrayV 4.0 package names"},
			&cli.IntFlag{Name: "max-slots", Usage: "highlight slots to use (max 15)"},
			&cli.IntFlag{Name: "max-lines", Usage: "statements per generated method"},
			&cli.StringFlag{Name: "class", Usage: "generated class name"},
			&cli.StringFlag{Name: "debug-log", Usage: "write a translation trace to this file"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log more"},
		},
		Before: setup,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				fmt.Println("ArrayV music tool")
				fmt.Println("")
				fmt.Println("Usage: arrayv-music [flags] <file.mid>")
				fmt.Println("       arrayv-music --help")
				return nil
			}
			return runConvert(ctx, c)
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "generate the Java source",
				ArgsUsage: "<file.mid>",
				Action:    runConvert,
			},
			{
				Name:      "inspect",
				Usage:     "step through the slot allocation in a terminal UI",
				ArgsUsage: "<file.mid>",
				Action:    runInspect,
			},
			{
				Name:      "events",
				Usage:     "print normalized and visualization events",
				ArgsUsage: "<file.mid>",
				Action:    runEvents,
			},
			{
				Name:      "init-config",
				Usage:     "write the default configuration",
				ArgsUsage: "<path>",
				Action:    runInitConfig,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "arrayv-music"})
