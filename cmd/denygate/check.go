package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/denygate/denygate"
	"github.com/denygate/denygate/pkg/wordlist"
)

var (
	checkWordsPath string
	checkBackend   string
	checkBinary    bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Check files or stdin for deny-list matches",
	Long: `Check content against a deny list. Reads the named files, or stdin when
no files are given. Exits 1 when any input matches.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkWordsPath, "words", "", "Path to a word-list YAML file (default: built-in lists)")
	checkCmd.Flags().StringVar(&checkBackend, "backend", "ahocorasick", "Matcher backend: ahocorasick, dense, regexset, hyperscan")
	checkCmd.Flags().BoolVar(&checkBinary, "msgpack", false, "Treat input as MessagePack instead of text")
}

var (
	matchColor = color.New(color.Bold, color.FgHiRed)
	cleanColor = color.New(color.FgHiGreen)
)

func runCheck(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter()
	if err != nil {
		return err
	}
	defer filter.Close()

	matched := false

	checkOne := func(name string, content []byte) error {
		found, err := checkContent(filter, content)
		if err != nil {
			return fmt.Errorf("checking %s: %w", name, err)
		}
		if found {
			matched = true
			if !quiet {
				matchColor.Fprintf(cmd.OutOrStdout(), "%s: deny-list match\n", name)
			}
		} else if verbose {
			cleanColor.Fprintf(cmd.OutOrStdout(), "%s: clean\n", name)
		}
		return nil
	}

	if len(args) == 0 {
		content, err := io.ReadAll(bufio.NewReader(cmd.InOrStdin()))
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		if err := checkOne("stdin", content); err != nil {
			return err
		}
	} else {
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			if err := checkOne(path, content); err != nil {
				return err
			}
		}
	}

	if matched {
		os.Exit(1)
	}
	return nil
}

func checkContent(filter *denygate.Filter, content []byte) (bool, error) {
	if checkBinary {
		return filter.ScanBinary(content)
	}
	return filter.IsMatch(string(content)), nil
}

// buildFilter compiles the configured word list with the selected
// backend. Shared by check and serve.
func buildFilter() (*denygate.Filter, error) {
	words, err := loadWords(checkWordsPath)
	if err != nil {
		return nil, err
	}

	backend, err := parseBackend(checkBackend)
	if err != nil {
		return nil, err
	}

	return denygate.New(words, denygate.WithBackend(backend))
}

func loadWords(path string) ([]string, error) {
	loader := wordlist.NewLoader()

	var lists []*wordlist.List
	var err error
	if path != "" {
		lists, err = loader.LoadFile(path)
	} else {
		lists, err = loader.LoadBuiltin()
	}
	if err != nil {
		return nil, fmt.Errorf("loading word lists: %w", err)
	}

	return wordlist.Merge(lists), nil
}

func parseBackend(name string) (denygate.Backend, error) {
	switch name {
	case "ahocorasick", "":
		return denygate.BackendAhoCorasick, nil
	case "dense":
		return denygate.BackendDense, nil
	case "regexset":
		return denygate.BackendRegexSet, nil
	case "hyperscan":
		return denygate.BackendHyperscan, nil
	default:
		return 0, fmt.Errorf("unknown backend %q", name)
	}
}
