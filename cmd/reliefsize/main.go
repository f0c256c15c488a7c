/*
Copyright © 2018 the reliefsize authors.
This file is part of reliefsize.

reliefsize is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

reliefsize is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with reliefsize.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command reliefsize is a command-line interface for sizing pressure
// relief devices.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/reliefsize/reliefutil"
)

func init() {
	logrus.SetLevel(logrus.InfoLevel)
	if os.Getenv("RELIEFSIZE_DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
}

func main() {
	var commands int
	for _, arg := range os.Args { // Count the number of supplied commands.
		if len(arg) > 0 && arg[0] != '-' {
			commands++
		}
	}
	if commands == 1 { // If only one command was supplied, start the GUI server.
		reliefutil.StartWebServer()
	}

	// If more than one command was supplied, run in CLI mode.
	if err := reliefutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
