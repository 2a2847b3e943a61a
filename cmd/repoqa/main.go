package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	configfile "github.com/arroyo-labs/repoqa-cli/internal/adapters/driven/config/file"
	embeddingopenai "github.com/arroyo-labs/repoqa-cli/internal/adapters/driven/embedding/openai"
	indexmem "github.com/arroyo-labs/repoqa-cli/internal/adapters/driven/index/memory"
	llmopenai "github.com/arroyo-labs/repoqa-cli/internal/adapters/driven/llm/openai"
	storagemem "github.com/arroyo-labs/repoqa-cli/internal/adapters/driven/storage/memory"
	"github.com/arroyo-labs/repoqa-cli/internal/adapters/driving/cli"
	"github.com/arroyo-labs/repoqa-cli/internal/chunker"
	"github.com/arroyo-labs/repoqa-cli/internal/connectors/github"
	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driven"
	"github.com/arroyo-labs/repoqa-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	ctx := context.Background()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	cfg := configStore.Config()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.OpenAIAPIKey
	}

	var embedder driven.EmbeddingService
	var llm driven.LLMService
	if apiKey != "" {
		embedder, err = embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey: apiKey,
			Model:  cfg.EmbeddingModel,
		})
		if err != nil {
			return fmt.Errorf("embedding service: %w", err)
		}
		llm, err = llmopenai.NewLLMService(llmopenai.Config{
			APIKey: apiKey,
			Model:  cfg.ChatModel,
		})
		if err != nil {
			return fmt.Errorf("chat service: %w", err)
		}
	}

	ghClient := github.NewClient(ctx, os.Getenv("GITHUB_TOKEN"))
	fetcher := github.NewFetcher(ghClient)

	splitter := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)

	svcs := cli.Services{
		Outline: services.NewOutlineService(fetcher),
		Config:  configStore,
	}
	if embedder != nil && llm != nil {
		ingest := services.NewIngestService(fetcher, embedder, splitter)
		answer := services.NewAnswerService(embedder, llm, domain.ProfileByName(cfg.Profile))
		svcs.Session = services.NewSessionService(ingest, answer,
			func() driven.VectorIndex { return indexmem.NewVectorIndex() },
			func() driven.ChunkStore { return storagemem.NewChunkStore() })
	}
	cli.SetServices(svcs)

	return cli.Execute()
}
