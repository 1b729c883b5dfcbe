package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joaochenriques/BIBparsley/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List registered bibliography formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := format.DefaultRegistry.List()
		if len(names) == 0 {
			fmt.Println("No formats registered")
			return nil
		}

		fmt.Println("Available formats:")
		for _, name := range names {
			f, _ := format.Get(name)
			fmt.Printf("  %-10s %s (.%s)\n", name, f.Description(), strings.Join(f.Extensions(), ", ."))
		}
		return nil
	},
}
