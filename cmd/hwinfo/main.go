// Command hwinfo dumps the hardware capabilities of a playback device.
package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/sndkit/alsa"
)

func main() {
	device := pflag.String("device", "default", "PCM device name (\"default\" or \"hw:card,device\")")

	pflag.Parse()

	dev, err := alsa.OpenByName(*device, alsa.ModeNonblock)
	if err != nil {
		log.Fatal("failed to open sound card", "err", err)
	}
	defer dev.Close()

	params, err := dev.ProbeParams()
	if err != nil {
		log.Fatal("failed to read hardware capabilities", "err", err)
	}

	fmt.Print(params)
}
