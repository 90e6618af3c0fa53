package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denygate/denygate/pkg/wordlist"
)

var wordsShowEntries bool

var wordsCmd = &cobra.Command{
	Use:   "words [file...]",
	Short: "List or validate word-list files",
	Long: `List the word lists in the named YAML files, or the built-in lists when no
files are given. Parsing errors make the command fail, so it doubles as a
validator for word-list files.`,
	RunE: runWords,
}

func init() {
	wordsCmd.Flags().BoolVar(&wordsShowEntries, "entries", false, "Print every word, not just list summaries")
}

func runWords(cmd *cobra.Command, args []string) error {
	loader := wordlist.NewLoader()
	out := cmd.OutOrStdout()

	var lists []*wordlist.List
	if len(args) == 0 {
		builtin, err := loader.LoadBuiltin()
		if err != nil {
			return fmt.Errorf("loading built-in lists: %w", err)
		}
		lists = builtin
	} else {
		for _, path := range args {
			loaded, err := loader.LoadFile(path)
			if err != nil {
				return err
			}
			lists = append(lists, loaded...)
		}
	}

	for _, l := range lists {
		fmt.Fprintf(out, "%s: %d words", l.Name, len(l.Words))
		if l.Description != "" {
			fmt.Fprintf(out, " - %s", l.Description)
		}
		fmt.Fprintln(out)
		if wordsShowEntries {
			for _, w := range l.Words {
				fmt.Fprintf(out, "  %s\n", w)
			}
		}
	}
	return nil
}
