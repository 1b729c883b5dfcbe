package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joaochenriques/BIBparsley/crossref"
	"github.com/joaochenriques/BIBparsley/format"
	"github.com/joaochenriques/BIBparsley/rules"
	"github.com/joaochenriques/BIBparsley/transform"

	// Register format plugins
	_ "github.com/joaochenriques/BIBparsley/format/bibtex"
)

var (
	cleanInput     string
	cleanOutput    string
	cleanRules     string
	cleanRulesFile string
	cleanSkipDOI   bool
	cleanStrict    bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [basename]",
	Short: "Clean a BibTeX file and resolve missing DOIs",
	Long: `Clean a BibTeX file: normalize author/editor names and page ranges,
strip unwanted fields, and resolve missing DOIs via CrossRef.

With a basename argument the input is {basename}.bib and the output
{basename}_updated.bib; --input and --output override either side.
The output file is only created once the whole input has parsed, so a
fatal parse error (duplicate citation id, malformed author field)
leaves no output behind.

Each cleaned entry is echoed to stdout as it is written.

Examples:
  bibparsley clean thesis
  bibparsley clean thesis --skip-doi
  bibparsley clean -i refs.bib -o refs_clean.bib
  bibparsley clean thesis --rules-file myrules.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanInput, "input", "i", "", "Input file (default: {basename}.bib)")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "Output file (default: {basename}_updated.bib)")
	cleanCmd.Flags().StringVar(&cleanRules, "rules", "", "Built-in rule set to apply (see: bibparsley rules list)")
	cleanCmd.Flags().StringVar(&cleanRulesFile, "rules-file", "", "Custom cleanup rules YAML file")
	cleanCmd.Flags().BoolVar(&cleanSkipDOI, "skip-doi", false, "Skip DOI resolution (offline mode)")
	cleanCmd.Flags().BoolVar(&cleanStrict, "strict", false, "Fail on records with malformed headers instead of skipping them")
}

// resolvePaths derives input and output filenames from the basename
// argument and flag overrides.
func resolvePaths(args []string) (string, string, error) {
	input := cleanInput
	output := cleanOutput

	if len(args) == 1 {
		if input == "" {
			input = args[0] + ".bib"
		}
		if output == "" {
			output = args[0] + "_updated.bib"
		}
	}
	if input == "" {
		return "", "", fmt.Errorf("no input: pass a basename argument or --input")
	}
	if output == "" {
		return "", "", fmt.Errorf("no output: pass a basename argument or --output")
	}
	return input, output, nil
}

func runClean(cmd *cobra.Command, args []string) (err error) {
	inputFile, outputFile, err := resolvePaths(args)
	if err != nil {
		return err
	}

	serializer, err := format.GetSerializer("bibtex")
	if err != nil {
		return err
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
	opts.Strict = cleanStrict

	set, err := parser.Parse(bytes.NewReader(data), opts)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputFile, err)
	}

	ruleSet, err := loadRules(cleanRules, cleanRulesFile)
	if err != nil {
		return err
	}

	var resolver transform.Resolver
	if !cleanSkipDOI {
		cfg, err := crossref.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading crossref config: %w", err)
		}
		resolver = crossref.NewClient(cfg)
	}

	cleaner := transform.New(ruleSet, resolver)
	if err := cleaner.Clean(cmd.Context(), set); err != nil {
		return fmt.Errorf("cleaning %s: %w", inputFile, err)
	}

	// Parsing and cleaning are done; only now is the output created.
	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	serializeOpts := format.NewSerializeOptions()
	serializeOpts.Echo = os.Stdout

	if err := serializer.Serialize(out, set, serializeOpts); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}

	return nil
}

// inputParser picks a parser by file extension or content sniffing,
// falling back to bibtex when neither identifies the input.
func inputParser(filename string, peek []byte) (format.Parser, error) {
	f, err := format.DetectFormat(filename, peek)
	if err != nil {
		return format.GetParser("bibtex")
	}
	p, ok := f.(format.Parser)
	if !ok {
		return nil, fmt.Errorf("format %s does not support parsing", f.Name())
	}
	return p, nil
}

// loadRules returns the rule set to apply: a custom file when given,
// then a built-in set by name, then the embedded defaults.
func loadRules(name, path string) (*rules.RuleSet, error) {
	if path != "" {
		return rules.Load(path)
	}
	if name != "" {
		return rules.Get(name)
	}
	return rules.Default()
}
