// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spool

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/rcengine/fault"
	"github.com/bitmark-inc/rcengine/util"
)

// FileSuffix - only files with this suffix are block files
const FileSuffix = ".blocks"

// size of the queue of files waiting to be processed
const queueSize = 100

// Spool - a directory that block files are dropped into
type Spool struct {
	log       *logger.L
	directory string
	done      string
	files     chan string
}

// New - a spool reading directory and moving finished files to done
//
// directory must exist; done is created if necessary
func New(directory string, done string) (*Spool, error) {
	info, err := os.Stat(directory)
	if nil != err {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fault.ErrSpoolDirectoryNotADirectory
	}

	if err := util.EnsureDirectory(done); nil != err {
		return nil, err
	}

	return &Spool{
		log:       logger.New("spool"),
		directory: directory,
		done:      done,
		files:     make(chan string, queueSize),
	}, nil
}

// Files - block files in the order they were seen
//
// a file can be sent more than once
func (s *Spool) Files() <-chan string {
	return s.files
}

// Pending - block files already in the directory, sorted by name
func (s *Spool) Pending() ([]string, error) {
	entries, err := ioutil.ReadDir(s.directory)
	if nil != err {
		return nil, err
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isBlockFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(s.directory, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Done - move a processed file out of the spool
func (s *Spool) Done(fileName string) error {
	destination := filepath.Join(s.done, filepath.Base(fileName))
	err := os.Rename(fileName, destination)
	if nil != err {
		s.log.Errorf("move: %q to: %q  error: %s", fileName, destination, err)
		return err
	}
	s.log.Infof("done: %q", fileName)
	return nil
}

// Run - background process sending pending then new files to Files()
func (s *Spool) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

	log.Info("starting…")

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Criticalf("new watcher error: %s", err)
		return
	}
	defer watcher.Close()

	err = watcher.Add(s.directory)
	if nil != err {
		log.Criticalf("watch: %q  error: %s", s.directory, err)
		return
	}

	pending, err := s.Pending()
	if nil != err {
		log.Errorf("pending files error: %s", err)
	}
	for _, fileName := range pending {
		if !s.send(fileName, shutdown) {
			return
		}
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-watcher.Events:
			if !ok {
				break loop
			}
			log.Debugf("file event: %v", event)
			if !isBlockFile(event.Name) || !isArrival(event) {
				continue loop
			}
			if !s.send(event.Name, shutdown) {
				break loop
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}

	log.Info("shutting down…")
	log.Flush()
}

// queue a file, false if shutdown arrived first
func (s *Spool) send(fileName string, shutdown <-chan struct{}) bool {
	select {
	case s.files <- fileName:
		return true
	case <-shutdown:
		return false
	}
}

func isBlockFile(name string) bool {
	return strings.HasSuffix(name, FileSuffix)
}

// created, moved in or written to
func isArrival(event fsnotify.Event) bool {
	return event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Write == fsnotify.Write
}
