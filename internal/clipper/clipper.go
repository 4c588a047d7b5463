package clipper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoRecipe is returned when a page carries no recognisable dish name.
var ErrNoRecipe = errors.New("no recipe found in page")

// Draft is a dish read from a web page, ready to be added to the catalog.
type Draft struct {
	Name        string
	Ingredients []string
	SourceURL   string
}

// Clipper fetches recipe pages and reads dishes out of them.
type Clipper struct {
	httpClient *http.Client
}

// NewClipper creates a new Clipper. A nil client gets a 15 second timeout.
func NewClipper(httpClient *http.Client) *Clipper {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Clipper{httpClient: httpClient}
}

// ClipURL fetches url and extracts a dish draft from it.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*Draft, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	draft, err := Extract(resp.Body)
	if err != nil {
		return nil, err
	}
	draft.SourceURL = url
	return draft, nil
}

// Extract reads a dish from recipe HTML. Structured schema.org Recipe data
// wins; otherwise the first heading names the dish and the list following an
// "Ingredients" heading supplies the ingredients.
func Extract(r io.Reader) (*Draft, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if draft := fromJSONLD(doc); draft != nil {
		return draft, nil
	}

	name := strings.TrimSpace(doc.Find("h1").First().Text())
	if name == "" {
		name = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if name == "" {
		return nil, ErrNoRecipe
	}
	return &Draft{Name: name, Ingredients: Ingredients(doc.Selection)}, nil
}

// Ingredients returns the list items under the first heading that mentions
// ingredients, or under an element whose class names them.
func Ingredients(s *goquery.Selection) []string {
	var items []string
	s.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(h.Text()), "ingredient") {
			return true
		}
		items = listItems(h.NextAllFiltered("ul, ol").First())
		return len(items) == 0
	})
	if len(items) == 0 {
		items = listItems(s.Find(`[class*="ingredient"]`).Filter("ul, ol").First())
	}
	return items
}

func listItems(list *goquery.Selection) []string {
	var items []string
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := collapseSpace(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

func fromJSONLD(doc *goquery.Document) *Draft {
	var found *Draft
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true
		}
		found = findRecipe(payload)
		return found == nil
	})
	return found
}

// findRecipe walks JSON-LD, including arrays and @graph, for a Recipe node.
func findRecipe(node any) *Draft {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			if d := findRecipe(item); d != nil {
				return d
			}
		}
	case map[string]any:
		if isRecipeType(v["@type"]) {
			name, _ := v["name"].(string)
			name = collapseSpace(name)
			if name == "" {
				return nil
			}
			var ingredients []string
			if list, ok := v["recipeIngredient"].([]any); ok {
				for _, ing := range list {
					if s, ok := ing.(string); ok && collapseSpace(s) != "" {
						ingredients = append(ingredients, collapseSpace(s))
					}
				}
			}
			return &Draft{Name: name, Ingredients: ingredients}
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipe(graph)
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IngredientsFromHTML reads the ingredient list from a post body fragment.
func IngredientsFromHTML(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return Ingredients(doc.Selection), nil
}
