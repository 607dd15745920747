// Command playwav streams a WAV file to a playback device.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/pflag"

	"github.com/sndkit/alsa"
)

func main() {
	var (
		device     = pflag.String("device", "default", "PCM device name (\"default\" or \"hw:card,device\")")
		periodSize = pflag.Uint32("period-size", 1024, "period size in frames")
		periods    = pflag.Uint32("periods", 4, "number of periods per ring buffer")
		channels   = pflag.Uint32("channels", 0, "number of channels (0 = use the WAV file's)")
		rate       = pflag.Uint32("rate", 0, "sample rate in Hz (0 = use the WAV file's)")
		formatStr  = pflag.String("format", "", "sample format (s8, s16, s24, s32, float, float64; empty = infer from the WAV file)")
	)

	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <wav-file>\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(1)
	}

	wavPath := pflag.Arg(0)
	wavFile, err := os.Open(wavPath)
	if err != nil {
		log.Fatal("failed to open WAV file", "err", err)
	}
	defer wavFile.Close()

	decoder := wav.NewDecoder(wavFile)
	if !decoder.IsValidFile() {
		log.Fatal("invalid WAV file", "path", wavPath)
	}

	format, err := determineFormat(*formatStr, decoder)
	if err != nil {
		log.Fatal("failed to determine sample format", "err", err)
	}

	cfg := &alsa.HardwareConfig{
		SampleRate: decoder.SampleRate,
		PeriodSize: *periodSize,
		Periods:    *periods,
		Access:     alsa.AccessRWInterleaved,
		Channels:   uint32(decoder.NumChans),
		Format:     format,
	}

	if *channels > 0 {
		cfg.Channels = *channels
	}

	if *rate > 0 {
		cfg.SampleRate = *rate
	}

	dev, err := alsa.OpenByName(*device, alsa.ModeBlock)
	if err != nil {
		log.Fatal("failed to open sound card", "err", err)
	}
	defer dev.Close()

	if err := alsa.Configure(dev, cfg); err != nil {
		log.Fatal("failed to configure hardware", "err", err)
	}

	log.Info("playing", "path", wavPath,
		"rate", dev.Rate(), "channels", dev.Channels(), "format", alsa.FormatNames[dev.Format()],
		"period_size", dev.PeriodSize(), "periods", dev.Periods())

	start := time.Now()
	framesWritten := 0

	pcmBuffer := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: int(decoder.NumChans),
			SampleRate:  int(decoder.SampleRate),
		},
		Data: make([]int, int(cfg.PeriodSize)*int(decoder.NumChans)),
	}

	for {
		n, err := decoder.PCMBuffer(pcmBuffer)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			log.Fatal("failed to read PCM data from WAV", "err", err)
		}

		if n == 0 {
			break
		}

		data := convertSamples(format, pcmBuffer.Data[:n], decoder.BitDepth)
		frames := uint32(n) / cfg.Channels

		written, err := dev.WriteFrames(data, frames)
		if err != nil {
			if rerr := dev.Recover(err, false); rerr != nil {
				log.Fatal("failed to write to sound card", "err", rerr)
			}

			written, err = dev.WriteFrames(data, frames)
			if err != nil {
				log.Fatal("failed to write to sound card after recovery", "err", err)
			}
		}

		framesWritten += written
	}

	if err := dev.Drain(); err != nil {
		log.Error("failed to drain stream", "err", err)
		os.Exit(1)
	}

	log.Info("playback finished", "elapsed", time.Since(start), "frames", framesWritten, "xruns", dev.Xruns())
}

// convertSamples turns the decoder's generic []int samples into the typed
// slice the device expects for the committed format.
func convertSamples(format alsa.Format, samples []int, bitDepth uint16) any {
	switch format {
	case alsa.FormatS8:
		out := make([]int8, len(samples))
		for i, s := range samples {
			out[i] = int8(s >> (bitDepth - 8))
		}

		return out
	case alsa.FormatS16LE:
		out := make([]int16, len(samples))
		for i, s := range samples {
			if s > 32767 {
				s = 32767
			} else if s < -32768 {
				s = -32768
			}

			out[i] = int16(s)
		}

		return out
	case alsa.FormatS24LE, alsa.FormatS32LE:
		out := make([]int32, len(samples))
		for i, s := range samples {
			out[i] = int32(s)
		}

		return out
	case alsa.FormatFloatLE:
		out := make([]float32, len(samples))
		maxVal := 1 << (bitDepth - 1)
		for i, s := range samples {
			out[i] = float32(s) / float32(maxVal)
		}

		return out
	case alsa.FormatFloat64LE:
		out := make([]float64, len(samples))
		maxVal := 1 << (bitDepth - 1)
		for i, s := range samples {
			out[i] = float64(s) / float64(maxVal)
		}

		return out
	default:
		return nil
	}
}

// determineFormat picks a PCM sample format from the flag value or, when it
// is empty, from the WAV header.
func determineFormat(formatStr string, decoder *wav.Decoder) (alsa.Format, error) {
	if formatStr != "" {
		switch formatStr {
		case "s8":
			return alsa.FormatS8, nil
		case "s16":
			return alsa.FormatS16LE, nil
		case "s24":
			return alsa.FormatS24LE, nil
		case "s32":
			return alsa.FormatS32LE, nil
		case "float":
			return alsa.FormatFloatLE, nil
		case "float64":
			return alsa.FormatFloat64LE, nil
		default:
			return alsa.FormatInvalid, fmt.Errorf("unsupported format string: %s", formatStr)
		}
	}

	if decoder.WavAudioFormat == 3 { // IEEE float
		switch decoder.BitDepth {
		case 32:
			return alsa.FormatFloatLE, nil
		case 64:
			return alsa.FormatFloat64LE, nil
		default:
			return alsa.FormatInvalid, fmt.Errorf("unsupported float bit depth from WAV: %d", decoder.BitDepth)
		}
	}

	switch decoder.BitDepth {
	case 8:
		return alsa.FormatS8, nil
	case 16:
		return alsa.FormatS16LE, nil
	case 24:
		return alsa.FormatS24LE, nil
	case 32:
		return alsa.FormatS32LE, nil
	default:
		return alsa.FormatInvalid, fmt.Errorf("unsupported integer bit depth from WAV: %d", decoder.BitDepth)
	}
}
