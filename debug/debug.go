// Package debug holds env-gated debug switches for the treestore packages.
// Each switch is read once at init from TREESTORE_DEBUG_* variables.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Path     bool
	Merge    bool
	Validate bool
	Grammar  bool
	Reindex  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Path = boolEnv("TREESTORE_DEBUG_PATH")
	d.Merge = boolEnv("TREESTORE_DEBUG_MERGE")
	d.Validate = boolEnv("TREESTORE_DEBUG_VALIDATE")
	d.Grammar = boolEnv("TREESTORE_DEBUG_GRAMMAR")
	d.Reindex = boolEnv("TREESTORE_DEBUG_REINDEX")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Path() bool {
	return d.Path
}
func Merge() bool {
	return d.Merge
}
func Validate() bool {
	return d.Validate
}
func Grammar() bool {
	return d.Grammar
}
func Reindex() bool {
	return d.Reindex
}
