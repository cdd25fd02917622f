// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/rcengine/chain"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/rcaccount"
	"github.com/bitmark-inc/rcengine/resource"
	"github.com/bitmark-inc/rcengine/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file
	defaultPidFile       = "" // no PidFile by default

	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "rc"

	defaultSpoolDirectory = "spool"
	defaultDoneDirectory  = "done"

	defaultLogDirectory = "log"
	defaultLogFile      = "rcd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

// DatabaseType - location of the leveldb files
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// SpoolType - where block files arrive and where they go when done
type SpoolType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Done      string `gluamapper:"done" json:"done"`
	Producing bool   `gluamapper:"producing" json:"producing"`
}

// PriceType - stake price as two integers
type PriceType struct {
	Stake  int64 `gluamapper:"stake" json:"stake"`
	Liquid int64 `gluamapper:"liquid" json:"liquid"`
}

// StakesType - initial stake table of a fresh database
type StakesType struct {
	Price   PriceType        `gluamapper:"price" json:"price"`
	Genesis map[string]int64 `gluamapper:"genesis" json:"genesis"`
}

// CurveOverride - blank fields keep the default
type CurveOverride struct {
	CoeffA string `gluamapper:"coeff_a" json:"coeff_a"`
	CoeffB string `gluamapper:"coeff_b" json:"coeff_b"`
	CoeffD string `gluamapper:"coeff_d" json:"coeff_d"`
	Shift  string `gluamapper:"shift" json:"shift"`
}

// DecayOverride - blank fields keep the default
type DecayOverride struct {
	DecayPerTimeUnit string `gluamapper:"decay_per_time_unit" json:"decay_per_time_unit"`
	DenomShift       string `gluamapper:"denom_shift" json:"denom_shift"`
}

// ResourceOverride - blank fields keep the default
type ResourceOverride struct {
	TimeUnit             string        `gluamapper:"time_unit" json:"time_unit"`
	ResourceUnitBase     string        `gluamapper:"resource_unit_base" json:"resource_unit_base"`
	ResourceUnitExponent string        `gluamapper:"resource_unit_exponent" json:"resource_unit_exponent"`
	Curve                CurveOverride `gluamapper:"curve" json:"curve"`
	Decay                DecayOverride `gluamapper:"decay" json:"decay"`
	BudgetPerTimeUnit    string        `gluamapper:"budget_per_time_unit" json:"budget_per_time_unit"`
}

// ResourcesType - per resource overrides, by resource name
type ResourcesType struct {
	HistoryBytes ResourceOverride `gluamapper:"history_bytes" json:"history_bytes"`
	NewAccounts  ResourceOverride `gluamapper:"new_accounts" json:"new_accounts"`
	MarketBytes  ResourceOverride `gluamapper:"market_bytes" json:"market_bytes"`
}

// Configuration - everything read from the rcd configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Chain         string               `gluamapper:"chain" json:"chain"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Spool         SpoolType            `gluamapper:"spool" json:"spool"`
	Stakes        StakesType           `gluamapper:"stakes" json:"stakes"`
	Resources     ResourcesType        `gluamapper:"resources" json:"resources"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - will read decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       defaultPidFile,
		Chain:         chain.Steem,

		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			Name:      defaultDatabaseName,
		},

		Spool: SpoolType{
			Directory: defaultSpoolDirectory,
			Done:      defaultDoneDirectory,
			Producing: false,
		},

		Stakes: StakesType{
			Price: PriceType{
				Stake:  1,
				Liquid: 1,
			},
			Genesis: map[string]int64{},
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(
					util.EnsureAbsolute(options.DataDirectory, *f[1]),
					*f[0],
				)
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Spool.Directory,
		&options.Spool.Done,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := util.EnsureDirectory(*d); nil != err {
			return nil, err
		}
	}

	if _, err := options.Price(); nil != err {
		return nil, err
	}
	if _, err := options.Parameters(); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

// Price - the configured stake price
func (c *Configuration) Price() (rcaccount.Price, error) {
	price := rcaccount.Price{
		Stake:  c.Stakes.Price.Stake,
		Liquid: c.Stakes.Price.Liquid,
	}
	if price.Liquid <= 0 || price.Stake < 0 {
		return rcaccount.Price{}, fault.ErrInvalidPrice
	}
	return price, nil
}

// Parameters - the chain's default parameters with any overrides applied
func (c *Configuration) Parameters() (resource.ParamSet, error) {
	params, err := resource.DefaultParams(c.Chain)
	if nil != err {
		return resource.ParamSet{}, err
	}

	overrides := map[resource.Type]*ResourceOverride{
		resource.HistoryBytes: &c.Resources.HistoryBytes,
		resource.NewAccounts:  &c.Resources.NewAccounts,
		resource.MarketBytes:  &c.Resources.MarketBytes,
	}
	for t, o := range overrides {
		if err := o.apply(&params[t]); nil != err {
			return resource.ParamSet{}, fmt.Errorf("resource: %s  error: %s", t, err)
		}
	}

	if err := params.Validate(); nil != err {
		return resource.ParamSet{}, err
	}
	return params, nil
}

// modify only the fields that were given
func (o *ResourceOverride) apply(p *resource.Params) error {
	if "" != o.TimeUnit {
		u, err := resource.TimeUnitFromString(o.TimeUnit)
		if nil != err {
			return err
		}
		p.TimeUnit = u
	}

	unsigned := []struct {
		s    string
		bits int
		set  func(uint64)
	}{
		{o.ResourceUnitBase, 8, func(v uint64) { p.ResourceUnitBase = uint8(v) }},
		{o.ResourceUnitExponent, 8, func(v uint64) { p.ResourceUnitExponent = uint8(v) }},
		{o.Curve.CoeffA, 64, func(v uint64) { p.Curve.CoeffA = v }},
		{o.Curve.CoeffB, 64, func(v uint64) { p.Curve.CoeffB = v }},
		{o.Curve.Shift, 8, func(v uint64) { p.Curve.Shift = uint8(v) }},
		{o.Decay.DecayPerTimeUnit, 32, func(v uint64) { p.Decay.DecayPerTimeUnit = uint32(v) }},
		{o.Decay.DenomShift, 8, func(v uint64) { p.Decay.DenomShift = uint8(v) }},
	}
	for _, item := range unsigned {
		if "" == item.s {
			continue
		}
		v, err := strconv.ParseUint(strings.TrimSpace(item.s), 10, item.bits)
		if nil != err {
			return err
		}
		item.set(v)
	}

	signed := []struct {
		s   string
		set func(int64)
	}{
		{o.Curve.CoeffD, func(v int64) { p.Curve.CoeffD = v }},
		{o.BudgetPerTimeUnit, func(v int64) { p.BudgetPerTimeUnit = v }},
	}
	for _, item := range signed {
		if "" == item.s {
			continue
		}
		v, err := strconv.ParseInt(strings.TrimSpace(item.s), 10, 64)
		if nil != err {
			return err
		}
		item.set(v)
	}

	return nil
}
