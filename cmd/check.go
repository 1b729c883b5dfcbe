package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/joaochenriques/BIBparsley/format"
)

var (
	checkInput  string
	checkStrict bool
)

var checkCmd = &cobra.Command{
	Use:   "check [basename]",
	Short: "Parse a BibTeX file and report its contents",
	Long: `Parse a BibTeX file without writing output.

Reports the number of entries per type and fails on the same fatal
conditions as clean (duplicate citation ids, malformed author fields).
Useful for checking a bibliography before cleaning it.

Examples:
  bibparsley check thesis
  bibparsley check -i refs.bib --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkInput, "input", "i", "", "Input file (default: {basename}.bib)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Fail on records with malformed headers instead of skipping them")
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	inputFile := checkInput
	if inputFile == "" {
		if len(args) != 1 {
			return fmt.Errorf("no input: pass a basename argument or --input")
		}
		inputFile = args[0] + ".bib"
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	parser, err := inputParser(inputFile, data)
	if err != nil {
		return err
	}

	opts := format.NewParseOptions()
	opts.SourceName = inputFile
	opts.Strict = checkStrict

	set, err := parser.Parse(bytes.NewReader(data), opts)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputFile, err)
	}

	byType := make(map[string]int)
	for _, entry := range set.Entries() {
		byType[entry.Type]++
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	fmt.Printf("%s: %d entries\n", inputFile, set.Len())
	for _, t := range types {
		fmt.Printf("  %-16s %d\n", t, byType[t])
	}

	return nil
}
