package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denygate/denygate/pkg/plugin"
	"github.com/denygate/denygate/pkg/serve"
)

var (
	servePluginName string
	serveBackend    string
	serveWordsPath  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a streaming NDJSON check server on stdin/stdout",
	Long: `Run denygate as a sidecar: NDJSON requests on stdin, responses on stdout.

Request types: "check" (flat args map), "check_binary" (base64 MessagePack),
"close". The server answers each request with the plugin result, including a
violation record on a deny-list hit.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveWordsPath, "words", "", "Path to a word-list YAML file (default: built-in lists)")
	serveCmd.Flags().StringVar(&serveBackend, "backend", "ahocorasick", "Matcher backend: ahocorasick, dense, regexset, hyperscan")
	serveCmd.Flags().StringVar(&servePluginName, "plugin-name", plugin.DefaultName, "Plugin identity reported on violations")
}

func runServe(cmd *cobra.Command, args []string) error {
	words, err := loadWords(serveWordsPath)
	if err != nil {
		return err
	}

	backend, err := parseBackend(serveBackend)
	if err != nil {
		return err
	}

	plug, err := plugin.New(words,
		plugin.WithName(servePluginName),
		plugin.WithBackend(backend),
	)
	if err != nil {
		return fmt.Errorf("creating plugin: %w", err)
	}
	defer plug.Close()

	if verbose {
		fmt.Fprintf(os.Stderr, "serving deny list (%d words, %s backend)\n", len(words), serveBackend)
	}

	server := serve.NewServer(plug, cmd.InOrStdin(), cmd.OutOrStdout())
	return server.Run(cmd.Context())
}
