package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/imkonsowa/takeout-recommender/config"
	"github.com/imkonsowa/takeout-recommender/llm"
)

func main() {
	prompt := flag.String("prompt", llm.DiagnosticPrompt, "prompt to send to the configured llm")
	flag.Parse()

	cfg := config.LoadConfig()

	client, err := llm.New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	slog.Info("sending prompt", "provider", cfg.LLM.Provider)

	output, err := client.Generate(context.Background(), *prompt)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	fmt.Println(strings.TrimSpace(output))
}
