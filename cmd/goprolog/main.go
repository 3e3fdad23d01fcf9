// Command goprolog is a thin CLI host over pkg/prolog: it owns text I/O,
// configuration, and presentation, and delegates every resolution
// decision to the engine (spec.md §6's "external collaborator" framing —
// the host is not part of the engine's contract).
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
