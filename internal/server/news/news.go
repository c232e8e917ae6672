// Package news fetches category-filtered articles from a NewsAPI-compatible
// source, optionally through a Redis cache.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
)

// SetupSourceName marks the placeholder article; clients render it as a
// configuration hint rather than a story.
const SetupSourceName = "Инструкция по настройке"

const genericQuery = "новости"

var categoryQueries = map[string]string{
	"technology":    "технологии OR IT OR гаджеты",
	"business":      "бизнес OR экономика OR финансы",
	"science":       "наука OR исследования OR открытия",
	"health":        "здоровье OR медицина",
	"sports":        "спорт OR футбол OR хоккей",
	"entertainment": "кино OR музыка OR шоу",
	"general":       genericQuery,
}

// Categories lists the recognised category keys.
func Categories() []string {
	return []string{"technology", "business", "science", "health", "sports", "entertainment", "general"}
}

// QueryFor maps category to the provider query, falling back to a generic one.
func QueryFor(category string) string {
	if q, ok := categoryQueries[category]; ok {
		return q
	}
	return genericQuery
}

type Source struct {
	Name string `json:"name"`
}

// Article mirrors the NewsAPI article shape the web client consumes.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`
}

// Fetcher returns articles for a category.
type Fetcher interface {
	Fetch(ctx context.Context, category string) ([]Article, error)
}

// Provider queries the /v2/everything endpoint.
type Provider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	now     func() time.Time
}

func NewProvider(baseURL, apiKey string, timeout time.Duration) *Provider {
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// Configured reports whether an API key is set.
func (p *Provider) Configured() bool {
	return p.apiKey != ""
}

type everythingResponse struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Articles []Article `json:"articles"`
}

// Fetch returns up to 20 recent articles for category. Without an API key it
// returns a single placeholder article and no error.
func (p *Provider) Fetch(ctx context.Context, category string) ([]Article, error) {
	if !p.Configured() {
		return []Article{p.placeholder()}, nil
	}

	q := url.Values{}
	q.Set("q", QueryFor(category))
	q.Set("language", "ru")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", "20")
	q.Set("apiKey", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v2/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUpstream, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// the URL carries the API key, keep it out of the error
		return nil, fmt.Errorf("%w: news request failed", common.ErrorUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading news response: %v", common.ErrorUpstream, err)
	}

	var out everythingResponse
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = json.Unmarshal(body, &out)
		return nil, fmt.Errorf("%w: news provider responded %d %s", common.ErrorUpstream, resp.StatusCode, out.Message)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding news response: %v", common.ErrorUpstream, err)
	}

	articles := make([]Article, 0, len(out.Articles))
	for _, a := range out.Articles {
		if a.Title == "[Removed]" || a.URL == "" {
			continue
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (p *Provider) placeholder() Article {
	return Article{
		Title: "Настройте NewsAPI для получения новостей",
		Description: "Чтобы видеть свежие новости:\n" +
			"1. Зарегистрируйтесь на newsapi.org\n" +
			"2. Получите бесплатный API ключ\n" +
			"3. Укажите его в переменной окружения NEWS_API_KEY\n" +
			"4. Перезапустите сервер",
		URL:         "https://newsapi.org/register",
		PublishedAt: p.now().UTC().Format(time.RFC3339),
		Source:      Source{Name: SetupSourceName},
	}
}
