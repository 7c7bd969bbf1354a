// Package scrape extracts question/answer pairs from FAQ web pages. The
// heuristics target the common FAQ markups: definition lists, headings
// followed by paragraphs, and question-style list items. They are not
// guaranteed to work on every site.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/quickdesk/relay/prompt"
)

const userAgent = "faq-harvester/1.0 (+https://github.com/quickdesk/relay)"

var whitespace = regexp.MustCompile(`\s+`)

// FetchDocument downloads and parses an HTML page.
func FetchDocument(ctx context.Context, url string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// Extract pulls question/answer pairs out of a parsed page, deduplicated by
// normalized question, in document order.
func Extract(doc *html.Node) []prompt.FAQ {
	var faqs []prompt.FAQ
	faqs = append(faqs, fromDefinitionLists(doc)...)
	faqs = append(faqs, fromHeadings(doc)...)
	faqs = append(faqs, fromListItems(doc)...)
	return dedupe(faqs)
}

// fromDefinitionLists pairs dt questions with dd answers.
func fromDefinitionLists(doc *html.Node) []prompt.FAQ {
	var faqs []prompt.FAQ
	for _, dl := range findAll(doc, "dl") {
		var question string
		for c := dl.FirstChild; c != nil; c = c.NextSibling {
			switch elementName(c) {
			case "dt":
				question = textContent(c)
			case "dd":
				answer := textContent(c)
				if question != "" && answer != "" {
					faqs = append(faqs, prompt.FAQ{Question: question, Answer: answer})
				}
				question = ""
			}
		}
	}
	return faqs
}

// fromHeadings treats h2/h3/h4 text as a question and the sibling content up
// to the next heading as its answer.
func fromHeadings(doc *html.Node) []prompt.FAQ {
	var faqs []prompt.FAQ
	for _, h := range findAll(doc, "h2", "h3", "h4") {
		question := textContent(h)
		var parts []string
		for sib := h.NextSibling; sib != nil; sib = sib.NextSibling {
			name := elementName(sib)
			if strings.HasPrefix(name, "h") && len(name) == 2 {
				break
			}
			if text := textContent(sib); text != "" {
				parts = append(parts, text)
			}
		}
		if question != "" && len(parts) > 0 {
			faqs = append(faqs, prompt.FAQ{Question: question, Answer: strings.Join(parts, "\n")})
		}
	}
	return faqs
}

// fromListItems splits list items of the form "Question? Answer".
func fromListItems(doc *html.Node) []prompt.FAQ {
	var faqs []prompt.FAQ
	for _, li := range findAll(doc, "li") {
		text := textContent(li)
		idx := strings.Index(text, "?")
		if idx < 0 || idx == len(text)-1 {
			continue
		}
		question := strings.TrimSpace(text[:idx+1])
		answer := strings.TrimSpace(text[idx+1:])
		if question != "" && answer != "" {
			faqs = append(faqs, prompt.FAQ{Question: question, Answer: answer})
		}
	}
	return faqs
}

// Dedupe removes entries whose normalized question was already seen,
// preserving first-seen order. Exported for aggregation across pages.
func Dedupe(faqs []prompt.FAQ) []prompt.FAQ {
	return dedupe(faqs)
}

func dedupe(faqs []prompt.FAQ) []prompt.FAQ {
	seen := make(map[string]bool)
	var uniq []prompt.FAQ
	for _, f := range faqs {
		key := normalizeQuestion(f.Question)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, f)
	}
	return uniq
}

func normalizeQuestion(q string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(q)), " ")
}

// textContent returns the whitespace-collapsed text below a node.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(whitespace.ReplaceAllString(sb.String(), " "))
}

func elementName(n *html.Node) string {
	if n.Type != html.ElementNode {
		return ""
	}
	return n.Data
}

func findAll(n *html.Node, names ...string) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if name := elementName(n); name != "" {
			for _, want := range names {
				if name == want {
					nodes = append(nodes, n)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return nodes
}
