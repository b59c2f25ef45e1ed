// Command distcheck verifies the integrity and provenance of published
// release artifacts in a multi-project distribution tree.
package main

import "os"

func main() {
	os.Exit(run())
}
