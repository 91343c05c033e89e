// Needle prints the literal substrings that every match of a regular
// expression contains. It reads expressions from the command line or from a
// YAML rule file, and can also serve the same queries over JSON-RPC.
package main

import (
	"os"

	"needle/internal/cache"
	"needle/internal/extract"
	"needle/internal/prog"
	"needle/internal/rpc"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(rpc.Program{}, cache.Program{}, extract.Program{})))
}
