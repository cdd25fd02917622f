// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package paramgen

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/resource"
)

// Entry - one resource of a generator file
type Entry struct {
	Type   resource.Type
	Input  Input
	Output Output
}

// ParseInput - decode [["name", {...}], ...] in file order
func ParseInput(buffer []byte) ([]Entry, error) {
	var pairs [][]json.RawMessage
	if err := json.Unmarshal(buffer, &pairs); nil != err {
		return nil, err
	}

	seen := map[resource.Type]bool{}
	entries := make([]Entry, 0, len(pairs))
	for i, pair := range pairs {
		if 2 != len(pair) {
			return nil, fmt.Errorf("entry: %d  error: %s", i, fault.ErrInvalidGeneratorInput)
		}

		name := ""
		if err := json.Unmarshal(pair[0], &name); nil != err {
			return nil, fmt.Errorf("entry: %d  error: %s", i, err)
		}
		t, err := resource.TypeFromString(name)
		if nil != err {
			return nil, fmt.Errorf("entry: %d  resource: %q  error: %s", i, name, err)
		}
		if seen[t] {
			return nil, fmt.Errorf("entry: %d  resource: %q  error: %s", i, name, fault.ErrInvalidGeneratorInput)
		}
		seen[t] = true

		e := Entry{Type: t}
		if err := json.Unmarshal(pair[1], &e.Input); nil != err {
			return nil, fmt.Errorf("entry: %d  resource: %q  error: %s", i, name, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Generate - compute every entry in place
func Generate(entries []Entry) error {
	for i := range entries {
		out, err := Compute(entries[i].Input)
		if nil != err {
			return fmt.Errorf("resource: %s  error: %s", entries[i].Type, err)
		}
		entries[i].Output = out
	}
	return nil
}

// MarshalOutput - [["name", {...}], ...] in entry order
func MarshalOutput(entries []Entry) ([]byte, error) {
	out := make([][2]interface{}, len(entries))
	for i, e := range entries {
		out[i] = [2]interface{}{e.Type.String(), e.Output}
	}
	return json.MarshalIndent(out, "", " ")
}

// ParamSet - the generated parameters as a complete set
//
// every resource type must have been generated
func ParamSet(entries []Entry) (resource.ParamSet, error) {
	set := resource.ParamSet{}
	found := map[resource.Type]bool{}
	for _, e := range entries {
		if !e.Type.Valid() || found[e.Type] {
			return resource.ParamSet{}, fault.ErrInvalidGeneratorInput
		}
		set[e.Type] = e.Output.Params
		found[e.Type] = true
	}
	if resource.NumTypes != len(found) {
		return resource.ParamSet{}, fault.ErrInvalidGeneratorInput
	}
	if err := set.Validate(); nil != err {
		return resource.ParamSet{}, err
	}
	return set, nil
}
