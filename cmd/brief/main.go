package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jmlester/the-ai-brief/internal/brief"
	"github.com/jmlester/the-ai-brief/internal/config"
	"github.com/jmlester/the-ai-brief/pkg/feed"
	"github.com/jmlester/the-ai-brief/pkg/llm"
)

// One-shot brief generation for the terminal. Streams progress to stderr and
// prints the finished brief as markdown on stdout.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	tone := flag.String("tone", "", "brief tone: executive, practical, or builder")
	hours := flag.Int("hours", 0, "time window in hours")
	modelName := flag.String("model", "", "generation model")
	topics := flag.String("topics", "", "focus topics")
	plain := flag.Bool("plain", false, "print plain text instead of markdown")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	if *tone != "" {
		cfg.Brief.Tone = *tone
	}
	if *hours > 0 {
		cfg.Brief.WindowHours = config.ClampWindow(*hours)
	}
	if *modelName != "" {
		cfg.Brief.Model = *modelName
	}
	if *topics != "" {
		cfg.Brief.FocusTopics = *topics
	}

	generator, err := llm.NewGenerator(cfg.Brief.Provider, llm.Config{
		APIKey:   cfg.APIKey(),
		Model:    cfg.Brief.Model,
		Endpoint: cfg.Brief.Endpoint,
	})
	if err != nil {
		log.Fatalf("error creating generator: %v", err)
	}

	pipeline := brief.NewPipeline(feed.NewService(nil), nil, slog.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := pipeline.Run(ctx, brief.Options{
		Sources:     cfg.Sources,
		WindowHours: cfg.Brief.WindowHours,
		Tone:        brief.Tone(cfg.Brief.Tone),
		FocusTopics: cfg.Brief.FocusTopics,
		Model:       cfg.Brief.Model,
	},
		generator,
		func(message string) { fmt.Fprintln(os.Stderr, message) },
		func(string) {},
	)
	if err != nil {
		log.Fatalf("error generating brief: %v", err)
	}

	if *plain {
		fmt.Println(brief.FormatPlainText(result.Sections))
	} else {
		fmt.Println(brief.FormatMarkdown(result.Sections))
	}
	fmt.Fprintln(os.Stderr, result.CoverageSummary)
}
