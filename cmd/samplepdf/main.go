package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/paperdesk/internal/logging"
	"github.com/dgallion1/paperdesk/internal/pdfgen"
)

func main() {
	log := logging.New(os.Stderr, "info", "text")

	paths, err := pdfgen.WriteSamples(".")
	for _, p := range paths {
		fmt.Printf("Saved: %s\n", p)
	}
	if err != nil {
		log.Error("generate samples", "error", err)
		os.Exit(1)
	}
}
