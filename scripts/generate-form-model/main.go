package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-urlpicker/internal/app"
	"github.com/goliatone/go-urlpicker/internal/config"
)

// Prints the decorated, localized form model the server would render, so
// form declarations and overlays can be checked without starting it.
func main() {
	var (
		formsDir   = flag.String("forms", "", "form declaration directory (embedded forms if empty)")
		formID     = flag.String("form", "page", "form ID to snapshot")
		locale     = flag.String("locale", "en", "locale for label translation")
		outputPath = flag.String("output", "", "output path for the serialized form model (stdout if empty)")
	)
	flag.Parse()

	cfg := config.Default()
	cfg.Forms.Dir = *formsDir
	cfg.Forms.Form = *formID
	cfg.Locale = *locale

	form, err := app.LoadForm(&cfg, app.Localize(&cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load form: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode form model: %v\n", err)
		os.Exit(1)
	}
	if *outputPath == "" {
		fmt.Println(string(payload))
		return
	}
	if err := os.WriteFile(*outputPath, append(payload, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *outputPath, err)
		os.Exit(1)
	}
	fmt.Printf("Form model written to %s\n", *outputPath)
}
