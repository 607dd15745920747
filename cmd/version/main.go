// Command version prints the version of the running ALSA driver.
package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/sndkit/alsa"
)

func main() {
	version, err := alsa.DriverVersion()
	if err != nil {
		log.Fatal("failed to read driver version", "err", err)
	}

	fmt.Println(version)
}
