// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/rcengine/paramgen"
	"github.com/bitmark-inc/rcengine/resource"
)

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	input := c.String("input")
	output := c.String("output")

	var buffer []byte
	var err error
	if "-" == input {
		buffer, err = ioutil.ReadAll(m.r)
	} else {
		buffer, err = ioutil.ReadFile(input)
	}
	if nil != err {
		return err
	}

	entries, err := paramgen.ParseInput(buffer)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "resources: %d\n", len(entries))
	}

	err = paramgen.Generate(entries)
	if nil != err {
		return err
	}

	var out bytes.Buffer
	if c.Bool("set") {
		set, err := paramgen.ParamSet(entries)
		if nil != err {
			return err
		}
		err = printJson(&out, namedParams(set))
		if nil != err {
			return err
		}
	} else {
		b, err := paramgen.MarshalOutput(entries)
		if nil != err {
			return err
		}
		fmt.Fprintf(&out, "%s\n", b)
	}

	if "-" == output {
		_, err = m.w.Write(out.Bytes())
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "writing: %q\n", output)
	}
	return ioutil.WriteFile(output, out.Bytes(), 0644)
}

// [["name", {...}], ...] in resource order
func namedParams(set resource.ParamSet) [][2]interface{} {
	result := make([][2]interface{}, 0, len(set))
	for _, t := range resource.Types() {
		result = append(result, [2]interface{}{t.String(), set[t]})
	}
	return result
}
