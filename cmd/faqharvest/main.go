// Command faqharvest scrapes question/answer pairs from FAQ web pages into
// the JSON knowledge file consumed by the chat relay's persona instruction.
//
// Usage:
//
//	faqharvest [-o data/faqs.json] [-delay 2s] <url> [<url>...]
//
// Only scrape sites you have permission to scrape; respect robots.txt.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/quickdesk/relay/prompt"
	"github.com/quickdesk/relay/scrape"
)

func main() {
	out := flag.String("o", "data/faqs.json", "output knowledge file")
	delay := flag.Duration("delay", 2*time.Second, "polite delay between requests")
	flag.Parse()

	urls := flag.Args()
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: faqharvest [-o data/faqs.json] [-delay 2s] <url> [<url>...]")
		os.Exit(1)
	}

	ctx := context.Background()
	var all []prompt.FAQ

	for i, url := range urls {
		if i > 0 {
			time.Sleep(*delay)
		}
		log.Printf("[%d/%d] scraping %s", i+1, len(urls), url)

		doc, err := scrape.FetchDocument(ctx, url)
		if err != nil {
			log.Printf("WARN: failed to scrape %s: %v", url, err)
			continue
		}

		items := scrape.Extract(doc)
		log.Printf("  -> %d items", len(items))
		for _, item := range items {
			item.Source = url
			all = append(all, item)
		}
	}

	all = scrape.Dedupe(all)

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("failed to create output directory: %v", err)
		}
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode FAQs: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}

	log.Printf("wrote %d FAQ items to %s", len(all), *out)
}
