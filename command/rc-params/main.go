// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	verbose bool
	e       io.Writer
	w       io.Writer
	r       io.Reader
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(r io.Reader, w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "rc-params"
	app.Usage = "resource credit parameter generator"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "compute parameters from budgets and half-lives",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "input, i",
					Value: "-",
					Usage: " JSON list of [resource, targets] `FILE` (- for stdin)",
				},
				cli.StringFlag{
					Name:  "output, o",
					Value: "-",
					Usage: " write the result to `FILE` (- for stdout)",
				},
				cli.BoolFlag{
					Name:  "set, s",
					Usage: " output only the parameters, all resources are required",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "defaults",
			Usage:     "display the built-in parameters of a chain",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "chain, c",
					Value: "steem",
					Usage: " chain `NAME` [steem|testing|local]",
				},
			},
			Action: runDefaults,
		},
		{
			Name:  "version",
			Usage: "display rc-params version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
			r:       r,
		}
		return nil
	}

	return app
}
