package source

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"

	"github.com/guizot/tech-news-digest/internal/model"
)

const maxSummaryLen = 300

type RSSSource struct {
	URL        string
	SourceName string
	client     *http.Client
}

func NewRSSSource(url string) RSSSource {
	return RSSSource{
		URL:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s RSSSource) Name() string {
	if s.SourceName != "" {
		return s.SourceName
	}
	return s.URL
}

func (s RSSSource) Fetch(ctx context.Context) ([]model.Item, error) {
	feed, err := s.loadFeed(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	sourceName := s.SourceName
	if sourceName == "" {
		sourceName = strings.TrimSpace(feed.Title)
	}
	if sourceName == "" {
		sourceName = s.URL
	}

	return lo.Map(feed.Items, func(item *rss.Item, _ int) model.Item {
		return model.Item{
			Title:      strings.TrimSpace(item.Title),
			Link:       strings.TrimSpace(item.Link),
			Summary:    cleanSummary(item.Summary),
			SourceName: sourceName,
			Categories: item.Categories,
			Date:       itemDate(item),
		}
	}), nil
}

// rss.FetchByClient has no context support, so race it against ctx.
func (s RSSSource) loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	var (
		feedCh = make(chan *rss.Feed)
		errCh  = make(chan error)
	)

	go func() {
		feed, err := rss.FetchByClient(url, s.client)
		if err != nil {
			errCh <- err
			return
		}
		feedCh <- feed
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case feed := <-feedCh:
		return feed, nil
	}
}

// itemDate returns the zero time for items whose date the parser could not
// read; the fetcher drops those.
func itemDate(item *rss.Item) time.Time {
	if !item.DateValid {
		return time.Time{}
	}
	return item.Date.UTC()
}

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
)

// cleanSummary strips feed HTML down to a short plain-text snippet.
func cleanSummary(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > maxSummaryLen {
		s = string(runes[:maxSummaryLen]) + "..."
	}
	return s
}
