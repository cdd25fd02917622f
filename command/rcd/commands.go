// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/rcengine/block"
	"github.com/bitmark-inc/rcengine/configuration"
	"github.com/bitmark-inc/rcengine/rc"
	"github.com/bitmark-inc/rcengine/rcaccount"
	"github.com/bitmark-inc/rcengine/resource"
)

// setup command handler
//
// commands that need neither the configuration file nor the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "dump-params", "params":
		return false // defer processing until configuration is read

	case "status", "s", "replay", "r", "digest", "d":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  start                      (run)    - watch the spool and process blocks, same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  dump-params                (params) - display the configured resource parameters\n")
		fmt.Printf("\n")

		fmt.Printf("  status ACCOUNT [TIME]      (s)      - display the credit of an account\n")
		fmt.Printf("                                        TIME defaults to the last block timestamp\n")
		fmt.Printf("\n")

		fmt.Printf("  replay FILE...             (r)      - apply the blocks of each file in order\n")
		fmt.Printf("\n")

		fmt.Printf("  digest                     (d)      - display the digest of the engine state\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		if err := printJson(os.Stdout, options); nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	case "dump-params", "params":
		params, err := options.Parameters()
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		if err := printJson(os.Stdout, namedParams(params)); nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the database is open so these commands can read and change it
func processDataCommand(log *logger.L, arguments []string, n *node) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "status", "s":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing account name argument")
		}

		now, err := statusTime(n.store, arguments[1:])
		if nil != err {
			exitwithstatus.Message("error in time: %s", err)
		}

		status, err := n.engine.Status(arguments[0], now)
		if nil != err {
			exitwithstatus.Message("status error: %s", err)
		}
		stake, _ := n.ledger.Stake(arguments[0])

		if err := printJson(os.Stdout, accountStatus{
			Account: arguments[0],
			Time:    now,
			Stake:   stake,
			Status:  status,
		}); nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	case "replay", "r":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing file name argument")
		}
		for _, fileName := range arguments {
			if "" == fileName {
				exitwithstatus.Message("missing file name")
			}
			count, err := n.processor.LoadFile(fileName)
			if nil != err {
				exitwithstatus.Message("replay: %q  error: %s", fileName, err)
			}
			log.Infof("replay: %q  blocks: %d", fileName, count)
		}
		if err := printSummary(os.Stdout, n); nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	case "digest", "d":
		if err := printSummary(os.Stdout, n); nil != err {
			exitwithstatus.Message("error: %s", err)
		}

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

type accountStatus struct {
	Account string           `json:"account"`
	Time    uint64           `json:"time,string"`
	Stake   int64            `json:"stake,string"`
	Status  rcaccount.Status `json:"status"`
}

type summary struct {
	Height uint64           `json:"height,string"`
	Digest string           `json:"digest"`
	Engine rc.Statistics    `json:"engine"`
	Blocks block.Statistics `json:"blocks"`
}

// explicit argument, else the last block, else the wall clock
func statusTime(store block.Store, arguments []string) (uint64, error) {
	if len(arguments) > 0 {
		return strconv.ParseUint(arguments[0], 10, 64)
	}
	last, found, err := store.LastBlock()
	if nil != err {
		return 0, err
	}
	if found {
		return last.Header.Timestamp, nil
	}
	return uint64(time.Now().Unix()), nil
}

func printSummary(handle io.Writer, n *node) error {
	digest, err := n.engine.Digest()
	if nil != err {
		return err
	}
	height, err := n.processor.Height()
	if nil != err {
		return err
	}
	return printJson(handle, summary{
		Height: height,
		Digest: digest.String(),
		Engine: n.engine.Statistics(),
		Blocks: n.processor.Statistics(),
	})
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// [["name", {...}], ...] in resource order
func namedParams(set resource.ParamSet) [][2]interface{} {
	result := make([][2]interface{}, 0, len(set))
	for _, t := range resource.Types() {
		result = append(result, [2]interface{}{t.String(), set[t]})
	}
	return result
}
