package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"sort"
	"strings"
	"time"

	set "github.com/guizot/tech-news-digest/external/datatypes"
	"github.com/guizot/tech-news-digest/internal/model"
)

type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Item, error)
}

type Fetcher struct {
	sources        []Source
	lookupWindow   time.Duration
	maxArticles    int
	filterKeywords []string
	now            func() time.Time
}

func New(
	sources []Source,
	lookupWindow time.Duration,
	maxArticles int,
	filterKeywords []string) *Fetcher {
	return &Fetcher{
		sources:        sources,
		lookupWindow:   lookupWindow,
		maxArticles:    maxArticles,
		filterKeywords: filterKeywords,
		now:            time.Now,
	}
}

// Fetch collects items from every source published within the lookup window,
// newest first, deduplicated and capped at maxArticles. A source that fails
// to fetch is skipped; only context cancellation aborts the whole pass.
func (f *Fetcher) Fetch(ctx context.Context) ([]model.Item, error) {
	cutoff := f.now().UTC().Add(-f.lookupWindow)

	var collected []model.Item
	for _, source := range f.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := source.Fetch(ctx)
		if err != nil {
			log.Printf("[WARN] fetching items from source %s: %v", source.Name(), err)
			continue
		}

		collected = append(collected, f.keepFresh(items, cutoff)...)
	}

	collected = dedupe(collected)

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].Date.After(collected[j].Date)
	})

	if f.maxArticles > 0 && len(collected) > f.maxArticles {
		collected = collected[:f.maxArticles]
	}

	return collected, nil
}

func (f *Fetcher) keepFresh(items []model.Item, cutoff time.Time) []model.Item {
	var fresh []model.Item
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		item.Date = item.Date.UTC()
		if item.Date.IsZero() || item.Date.Before(cutoff) {
			continue
		}

		if f.filterItem(item) {
			continue
		}

		item.Link = normalizeLink(item.Link)
		fresh = append(fresh, item)
	}
	return fresh
}

func (f *Fetcher) filterItem(item model.Item) bool {
	categoriesSet := set.New(item.Categories...)
	for _, keyword := range f.filterKeywords {
		titleContainsKeyword := strings.Contains(strings.ToLower(item.Title), keyword)
		if categoriesSet.Has(keyword) || titleContainsKeyword {
			return true
		}
	}
	return false
}

// dedupe drops repeated stories within a single run, keeping the newest
// copy. Feeds often re-publish the same article under tracking-parameter
// variants of its URL, so identity is title plus the query-stripped link.
func dedupe(items []model.Item) []model.Item {
	seen := set.New[string]()
	byID := make(map[string]int, len(items))

	var result []model.Item
	for _, item := range items {
		id := stableID(item.Title, item.Link)
		if seen.Has(id) {
			if prev := byID[id]; item.Date.After(result[prev].Date) {
				result[prev] = item
			}
			continue
		}
		seen.Add(id)
		byID[id] = len(result)
		result = append(result, item)
	}
	return result
}

func stableID(title, link string) string {
	raw := strings.ToLower(strings.TrimSpace(title)) + "|" + normalizeLink(link)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:16]
}

func normalizeLink(link string) string {
	link, _, _ = strings.Cut(link, "?")
	return strings.TrimSpace(link)
}
