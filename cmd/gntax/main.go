// Package main provides the gntax CLI application.
// gntax builds taxonomic trees from classification text and maps
// auxiliary datasets onto them.
package main

import (
	"github.com/gnames/gntax/cmd"
)

func main() {
	cmd.Execute()
}
