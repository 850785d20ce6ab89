// Command enginectl is the sqlite-backed CLI front end for the engine,
// the same dev/ops role the teacher pack's cmd/ binaries play against
// their own storage backends.
package main

import "crab.casa/tactics-engine/internal/cli"

func main() {
	cli.Execute()
}
