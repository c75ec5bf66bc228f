package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/guizot/tech-news-digest/internal/config"
	"github.com/guizot/tech-news-digest/internal/fetcher"
	"github.com/guizot/tech-news-digest/internal/markup"
	"github.com/guizot/tech-news-digest/internal/model"
	"github.com/guizot/tech-news-digest/internal/notifier"
	"github.com/guizot/tech-news-digest/internal/source"
	"github.com/guizot/tech-news-digest/internal/summary"
)

type App struct {
	ctx context.Context
}

func New(ctx context.Context) *App {
	return &App{
		ctx: ctx,
	}
}

// Run executes one digest pass: collect, summarize, format, post.
func (a *App) Run() error {
	cfg := config.Get()

	if err := cfg.Validate(); err != nil {
		return err
	}

	botApi, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return fmt.Errorf("failed to create bot api: %w", err)
	}

	var (
		sources = lo.Map(cfg.FeedURLs, func(url string, _ int) fetcher.Source {
			return source.NewRSSSource(url)
		})
		feedFetcher = fetcher.New(
			sources,
			cfg.LookupWindow,
			cfg.MaxArticles,
			cfg.FilterKeywords,
		)
		summarizer = summary.NewOpenAISummarizer(
			cfg.OpenAIKey,
			cfg.OpenAIBaseURL,
			cfg.OpenAIModel,
			cfg.OpenAIPrompt,
		)
		digestNotifier = notifier.New(botApi, cfg.TelegramChannelID)
	)

	ctx, cancel := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return run(ctx, cfg, feedFetcher, summarizer, digestNotifier)
}

type itemFetcher interface {
	Fetch(ctx context.Context) ([]model.Item, error)
}

type summarizer interface {
	Summarize(ctx context.Context, items []model.Item) ([]model.Story, error)
}

type poster interface {
	Post(ctx context.Context, text string) error
}

func run(ctx context.Context, cfg config.Config, fetcher itemFetcher, summarizer summarizer, notifier poster) error {
	items, err := fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch feeds: %w", err)
	}
	log.Printf("[INFO] collected %d items within the last %s", len(items), cfg.LookupWindow)

	now := time.Now().UTC()

	if len(items) == 0 {
		log.Println("[INFO] no qualifying items, posting empty notice")
		return notifier.Post(ctx, markup.FormatEmptyNotice(cfg.DigestTitle, now))
	}

	stories, err := summarizer.Summarize(ctx, items)
	if err != nil {
		return fmt.Errorf("failed to summarize items: %w", err)
	}
	log.Printf("[INFO] composed digest with %d stories", len(stories))

	if err := notifier.Post(ctx, markup.FormatDigest(cfg.DigestTitle, now, stories)); err != nil {
		return fmt.Errorf("failed to post digest: %w", err)
	}
	log.Println("[INFO] digest posted")

	return nil
}
