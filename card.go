package alsa

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Card describes an installed sound card as reported by the kernel.
type Card struct {
	Number  uint
	ID      string
	Name    string
	Devices []CardDevice
}

// CardDevice describes one PCM device of a card.
type CardDevice struct {
	Card     uint
	Device   uint
	ID       string
	Playback bool
	Capture  bool
}

func (c Card) String() string {
	return fmt.Sprintf("card %d [%s]: %s", c.Number, c.ID, c.Name)
}

func (d CardDevice) String() string {
	var dirs []string
	if d.Playback {
		dirs = append(dirs, "playback")
	}

	if d.Capture {
		dirs = append(dirs, "capture")
	}

	return fmt.Sprintf("hw:%d,%d %s (%s)", d.Card, d.Device, d.ID, strings.Join(dirs, "/"))
}

// ListCards enumerates the installed sound cards and their PCM devices from
// /proc/asound.
func ListCards() ([]Card, error) {
	cardsText, err := os.ReadFile("/proc/asound/cards")
	if err != nil {
		return nil, fmt.Errorf("failed to read sound card list: %w", err)
	}

	cards, err := parseCards(string(cardsText))
	if err != nil {
		return nil, err
	}

	// The pcm file is absent when no card exposes a PCM device.
	pcmText, err := os.ReadFile("/proc/asound/pcm")
	if err != nil {
		if os.IsNotExist(err) {
			return cards, nil
		}

		return nil, fmt.Errorf("failed to read PCM device list: %w", err)
	}

	devices, err := parseDevices(string(pcmText))
	if err != nil {
		return nil, err
	}

	for i := range cards {
		for _, dev := range devices {
			if dev.Card == cards[i].Number {
				cards[i].Devices = append(cards[i].Devices, dev)
			}
		}
	}

	return cards, nil
}

// parseCards parses /proc/asound/cards. Each card occupies two lines:
//
//	 0 [PCH            ]: HDA-Intel - HDA Intel PCH
//	                      HDA Intel PCH at 0xf7f30000 irq 31
//
// The second line is descriptive detail and is skipped. An empty list
// ("--- no soundcards ---") yields no cards and no error.
func parseCards(text string) ([]Card, error) {
	var cards []Card

	for _, line := range strings.Split(text, "\n") {
		if line == "" || strings.HasPrefix(line, "---") {
			continue
		}

		lb := strings.IndexByte(line, '[')
		rb := strings.IndexByte(line, ']')
		if lb < 0 || rb < lb {
			continue
		}

		number, err := strconv.ParseUint(strings.TrimSpace(line[:lb]), 10, 32)
		if err != nil {
			continue
		}

		rest := line[rb+1:]
		colon := strings.IndexByte(rest, ':')
		if colon < 0 {
			return nil, fmt.Errorf("malformed card line %q", line)
		}

		cards = append(cards, Card{
			Number: uint(number),
			ID:     strings.TrimSpace(line[lb+1 : rb]),
			Name:   strings.TrimSpace(rest[colon+1:]),
		})
	}

	return cards, nil
}

// parseDevices parses /proc/asound/pcm lines of the form
//
//	00-00: ALC892 Analog : ALC892 Analog : playback 1 : capture 1
func parseDevices(text string) ([]CardDevice, error) {
	var devices []CardDevice

	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}

		fields := strings.Split(line, ":")
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed pcm line %q", line)
		}

		var card, device uint
		if _, err := fmt.Sscanf(fields[0], "%02d-%02d", &card, &device); err != nil {
			return nil, fmt.Errorf("malformed pcm device number %q: %w", fields[0], err)
		}

		dev := CardDevice{
			Card:   card,
			Device: device,
			ID:     strings.TrimSpace(fields[1]),
		}

		for _, f := range fields[2:] {
			f = strings.TrimSpace(f)
			if strings.HasPrefix(f, "playback") {
				dev.Playback = true
			}

			if strings.HasPrefix(f, "capture") {
				dev.Capture = true
			}
		}

		devices = append(devices, dev)
	}

	return devices, nil
}

// DriverVersion returns the version string of the running ALSA driver.
func DriverVersion() (string, error) {
	text, err := os.ReadFile("/proc/asound/version")
	if err != nil {
		return "", fmt.Errorf("failed to read driver version: %w", err)
	}

	return parseVersion(string(text))
}

// parseVersion extracts the version token from the one-line banner
//
//	Advanced Linux Sound Architecture Driver Version k5.15.0-58-generic.
func parseVersion(text string) (string, error) {
	const marker = "Version "

	idx := strings.Index(text, marker)
	if idx < 0 {
		return "", fmt.Errorf("unrecognized version banner %q", strings.TrimSpace(text))
	}

	version := strings.TrimSpace(text[idx+len(marker):])
	version = strings.TrimSuffix(version, ".")

	if version == "" {
		return "", fmt.Errorf("unrecognized version banner %q", strings.TrimSpace(text))
	}

	return version, nil
}
