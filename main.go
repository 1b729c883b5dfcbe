package main

import (
	"github.com/joaochenriques/BIBparsley/cmd"

	// Register format plugins
	_ "github.com/joaochenriques/BIBparsley/format/bibtex"
)

func main() {
	cmd.Execute()
}
