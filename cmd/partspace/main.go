// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Command partspace answers spatial queries about an
// assembly described in a YAML file.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	// Flags.
	flagScene = "scene"
	flagDebug = "debug"
)

var logger = zap.NewNop().Sugar()

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "partspace",
		Usage: "query bounds and frames of an assembly",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagScene,
				Aliases:  []string{"s"},
				EnvVars:  []string{"PARTSPACE_SCENE"},
				Required: true,
				Usage:    "load the scene from `FILE`",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			l, err := newLogger(c.Bool(flagDebug))
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		After: func(*cli.Context) error {
			// Sync fails on some terminals.
			_ = logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "tree",
				Usage:  "print the part hierarchy",
				Action: treeAction,
			},
			{
				Name:      "bounds",
				Usage:     "print the world bounding box of a part and its descendants",
				ArgsUsage: "[part]",
				Action:    boundsAction,
			},
			{
				Name:      "center",
				Usage:     "print the world center of a part",
				ArgsUsage: "<part>",
				Action:    centerAction,
			},
			{
				Name:      "size",
				Usage:     "print the world size of a part",
				ArgsUsage: "<part>",
				Action:    sizeAction,
			},
			{
				Name:      "distance",
				Usage:     "print the distance between the centers of two parts",
				ArgsUsage: "<part> <part>",
				Action:    distanceAction,
			},
			{
				Name:      "offset",
				Usage:     "print the center of a part in the parent frame of another",
				ArgsUsage: "<source> <target>",
				Action:    offsetAction,
			},
			{
				Name:      "extreme",
				Usage:     "print the extreme point of a part's bounds along a direction",
				ArgsUsage: "<part> <x> <y> <z>",
				Action:    extremeAction,
			},
			{
				Name:      "to-local",
				Usage:     "express a world point in the frame of a part",
				ArgsUsage: "<part> <x> <y> <z>",
				Action:    toLocalAction,
			},
			{
				Name:      "to-world",
				Usage:     "express a point in the frame of a part in world space",
				ArgsUsage: "<part> <x> <y> <z>",
				Action:    toWorldAction,
			},
			{
				Name:      "classify",
				Usage:     "print the animation commands selected by text",
				ArgsUsage: "<text>...",
				Action:    classifyAction,
			},
			{
				Name:      "outline",
				Usage:     "create outline overlays for a part and print them",
				ArgsUsage: "<part>",
				Action:    outlineAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "partspace:", err)
		os.Exit(1)
	}
}
