// Command mazegen carves a maze in the terminal, either at once or step by step.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/config"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/logger"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/urfave/cli/v3"
)

const clearScreen = "\033[H\033[2J"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newCommand(os.Stdout).Run(ctx, os.Args); err != nil {
		appLogger, _ := logger.New("MAZEGEN", config.ColorRed, os.Stderr)
		appLogger.Error(err.Error())
		os.Exit(1)
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "mazegen",
		Usage: "carve a perfect maze with the recursive backtracker",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "size", Aliases: []string{"n"}, Value: 16, Usage: "cells per side"},
			&cli.IntFlag{Name: "seed", Aliases: []string{"s"}, Usage: "random seed (default: time based)"},
			&cli.BoolFlag{Name: "animate", Aliases: []string{"a"}, Usage: "redraw after every step"},
			&cli.DurationFlag{Name: "interval", Value: 100 * time.Millisecond, Usage: "pause between animated steps"},
			&cli.BoolFlag{Name: "stats", Usage: "print step and passage counts"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := []maze.GeneratorOption{}
			if cmd.IsSet("seed") {
				opts = append(opts, maze.WithSeed(int64(cmd.Int("seed"))))
			}

			g, err := maze.NewGenerator(int(cmd.Int("size")), opts...)
			if err != nil {
				return err
			}

			var final maze.Snapshot
			if cmd.Bool("animate") {
				final, err = animate(ctx, out, g, cmd.Duration("interval"))
			} else {
				final, err = g.Generate()
			}
			if err != nil {
				return err
			}

			fmt.Fprint(out, final.String())
			if cmd.Bool("stats") {
				fmt.Fprintf(out, "size=%d steps=%d passages=%d\n", final.Size, final.Steps, final.CarvedEdges())
			}
			return nil
		},
	}
}

// animate drives the generator on a ticker, redrawing the grid each step.
// Interrupting stops at the current step.
func animate(ctx context.Context, out io.Writer, g *maze.Generator, interval time.Duration) (maze.Snapshot, error) {
	if interval <= 0 {
		return maze.Snapshot{}, fmt.Errorf("interval must be positive, got %s", interval)
	}
	if err := g.Start(); err != nil {
		return maze.Snapshot{}, err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	snap := g.Snapshot()
	for !snap.Complete() {
		fmt.Fprint(out, clearScreen+snap.String())
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-ticker.C:
		}

		var err error
		if snap, err = g.Step(); err != nil {
			return snap, err
		}
	}
	fmt.Fprint(out, clearScreen)
	return snap, nil
}
