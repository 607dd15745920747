// Command devices lists the installed sound cards and their PCM devices.
package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/sndkit/alsa"
)

func main() {
	cards, err := alsa.ListCards()
	if err != nil {
		log.Fatal("failed to list sound cards", "err", err)
	}

	if len(cards) == 0 {
		fmt.Println("no soundcards found")

		return
	}

	for _, card := range cards {
		fmt.Println(card)

		for _, dev := range card.Devices {
			fmt.Printf("  %s\n", dev)
		}
	}
}
