package ngdp

import (
	"log"
)

// LogFunc is the common logging func type.
type LogFunc func(string, ...interface{})

// nolog discards everything.
func nolog(string, ...interface{}) {}

// defaultLogf is the default general logging func.
var defaultLogf LogFunc = log.Printf
