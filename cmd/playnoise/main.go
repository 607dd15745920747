// Command playnoise plays white noise on a playback device.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/sndkit/alsa"
)

func main() {
	var (
		device     = pflag.String("device", "default", "PCM device name (\"default\" or \"hw:card,device\")")
		rate       = pflag.Uint32("rate", 48000, "sample rate in Hz")
		channels   = pflag.Uint32("channels", 2, "number of channels")
		periodSize = pflag.Uint32("period-size", 2048, "period size in frames")
		periods    = pflag.Uint32("periods", 2, "number of periods per ring buffer")
		count      = pflag.Int("count", 10, "number of periods to play")
	)

	pflag.Parse()

	dev, err := alsa.OpenByName(*device, alsa.ModeBlock)
	if err != nil {
		log.Fatal("failed to open sound card", "err", err)
	}
	defer dev.Close()

	cfg := &alsa.HardwareConfig{
		SampleRate: *rate,
		PeriodSize: *periodSize,
		Periods:    *periods,
		Access:     alsa.AccessRWInterleaved,
		Channels:   *channels,
		Format:     alsa.FormatS16LE,
	}

	if err := alsa.Configure(dev, cfg); err != nil {
		log.Fatal("failed to configure hardware", "err", err)
	}

	log.Info("generating random noise")

	buf := make([]int16, 2*cfg.PeriodSize*cfg.Periods)
	if err := alsa.GenerateNoise(buf); err != nil {
		log.Fatal("failed to generate noise", "err", err)
	}

	log.Info("sending data to sound card", "count", *count)

	if err := alsa.Play(dev, buf, cfg.PeriodSize, *count); err != nil {
		log.Fatal("playback failed", "err", err)
	}

	if err := dev.Drain(); err != nil {
		log.Error("failed to drain stream", "err", err)
		os.Exit(1)
	}
}
