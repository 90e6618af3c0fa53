package wordlist

import "embed"

// builtinFS embeds the built-in word lists.
//
//go:embed lists/*.yaml
var builtinFS embed.FS
