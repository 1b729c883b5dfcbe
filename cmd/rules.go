package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joaochenriques/BIBparsley/rules"
)

var rulesShowFile string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect cleanup rule sets",
	Long:  `Show which fields the cleanup step removes, per entry type.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in rule sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, err := rules.List()
		if err != nil {
			return err
		}

		fmt.Println("Available rule sets:")
		fmt.Println()
		for _, rs := range sets {
			fmt.Printf("  %-12s %s\n", rs.Name, rs.Description)
		}
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a rule set as YAML",
	Long: `Show a rule set as YAML. With no argument the default set is
shown; --rules-file shows a custom file instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			rs  *rules.RuleSet
			err error
		)
		switch {
		case rulesShowFile != "":
			rs, err = rules.Load(rulesShowFile)
		case len(args) == 1:
			rs, err = rules.Get(args[0])
		default:
			rs, err = rules.Default()
		}
		if err != nil {
			return err
		}

		out, err := rs.Marshal()
		if err != nil {
			return err
		}

		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rulesShowCmd.Flags().StringVar(&rulesShowFile, "rules-file", "", "Custom cleanup rules YAML file")
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesShowCmd)
}
