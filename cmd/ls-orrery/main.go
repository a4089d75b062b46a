// Command ls-orrery is a terminal orrery for the Solar System and the
// exoplanet systems of the NASA Exoplanet Archive.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
