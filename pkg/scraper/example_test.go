package scraper_test

import (
	"context"
	"fmt"

	"emojigrab/pkg/config"
	"emojigrab/pkg/scraper"
)

func ExampleScraper_Run() {
	cfg := config.DefaultConfig()
	cfg.Discord.Email = "you@example.com"
	cfg.Discord.Password = "your_password"
	cfg.Collections = []config.Collection{
		{Name: "My Server"},
		{Name: "Another Server", Folder: "another"},
	}

	s, err := scraper.New(cfg)
	if err != nil {
		fmt.Printf("Failed to create scraper: %v\n", err)
		return
	}

	if err := s.Run(context.Background()); err != nil {
		fmt.Printf("Extraction failed: %v\n", err)
		return
	}

	fmt.Println("Emojis extracted successfully!")
}
