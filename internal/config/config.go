package config

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

const defaultFeedURLs = "https://www.theverge.com/rss/index.xml," +
	"https://techcrunch.com/feed/," +
	"https://www.wired.com/feed/rss," +
	"https://arstechnica.com/feed/," +
	"https://www.engadget.com/rss.xml," +
	"https://www.technologyreview.com/feed/"

type Config struct {
	TelegramBotToken  string        `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChannelID int64         `hcl:"telegram_channel_id" env:"TELEGRAM_CHANNEL_ID"`
	FeedURLs          []string      `hcl:"feed_urls" env:"FEED_URLS"`
	FilterKeywords    []string      `hcl:"filter_keywords" env:"FILTER_KEYWORDS"`
	OpenAIKey         string        `hcl:"openai_key" env:"OPENAI_KEY"`
	OpenAIModel       string        `hcl:"openai_model" env:"OPENAI_MODEL"`
	OpenAIBaseURL     string        `hcl:"openai_base_url" env:"OPENAI_BASE_URL"`
	OpenAIPrompt      string        `hcl:"openai_prompt" env:"OPENAI_PROMPT"`
	DigestTitle       string        `hcl:"digest_title" env:"DIGEST_TITLE" default:"📰 Tech News Digest (Last 24h)"`
	MaxArticles       int           `hcl:"max_articles" env:"MAX_ARTICLES" default:"25"`
	LookupWindow      time.Duration `hcl:"lookup_window" env:"LOOKUP_WINDOW" default:"24h"`
}

// Validate reports every missing required setting at once, so a misconfigured
// scheduler run fails with a single actionable message.
func (c Config) Validate() error {
	var missing []string
	if c.TelegramBotToken == "" {
		missing = append(missing, "TND_TELEGRAM_BOT_TOKEN")
	}
	if c.TelegramChannelID == 0 {
		missing = append(missing, "TND_TELEGRAM_CHANNEL_ID")
	}
	if c.OpenAIKey == "" {
		missing = append(missing, "TND_OPENAI_KEY")
	}
	if c.OpenAIModel == "" {
		missing = append(missing, "TND_OPENAI_MODEL")
	}
	if len(missing) > 0 {
		return &MissingVarsError{Vars: missing}
	}
	return nil
}

type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return "missing required config: " + strings.Join(e.Vars, ", ")
}

var (
	cfg  Config
	once sync.Once
)

func Get() Config {
	once.Do(func() {
		loader := aconfig.LoaderFor(&cfg, aconfig.Config{
			EnvPrefix: "TND",
			Files: []string{
				"./config.hcl",
				"./config.local.hcl",
				"$HOME/.config/tech-news-digest/config.hcl",
			},
			FileDecoders: map[string]aconfig.FileDecoder{
				".hcl": aconfighcl.New(),
			},
		})

		if err := loader.Load(); err != nil {
			log.Printf("[ERROR] failed to load config: %v", err)
		}

		if len(cfg.FeedURLs) == 0 {
			cfg.FeedURLs = strings.Split(defaultFeedURLs, ",")
		}
		cfg.OpenAIKey = strings.TrimSpace(cfg.OpenAIKey)
	})

	return cfg
}
