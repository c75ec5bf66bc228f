// Package markup renders digests as Telegram HTML.
package markup

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/guizot/tech-news-digest/internal/model"
)

// FormatDigest renders the digest message: a bold dated header followed by
// one block per story. Pure function of its arguments.
func FormatDigest(title string, date time.Time, stories []model.Story) string {
	var (
		storyBlocks = lo.Map(stories, func(story model.Story, _ int) string {
			return formatStory(story)
		})
		header = fmt.Sprintf("<b>%s — %s</b>", EscapeForHTML(title), dateLabel(date))
	)

	return header + "\n\n" + strings.Join(storyBlocks, "\n\n")
}

// FormatEmptyNotice renders the message posted when no items qualified.
func FormatEmptyNotice(title string, date time.Time) string {
	return fmt.Sprintf("<b>%s — %s</b>\n\nNo notable items found in the last 24 hours.",
		EscapeForHTML(title), dateLabel(date))
}

func formatStory(story model.Story) string {
	lines := make([]string, 0, len(story.Bullets)+2)
	lines = append(lines, fmt.Sprintf("<b>%s</b>", EscapeForHTML(story.Headline)))
	if story.Link != "" {
		lines = append(lines, story.Link)
	}
	for _, bullet := range story.Bullets {
		lines = append(lines, "• "+EscapeForHTML(bullet))
	}
	return strings.Join(lines, "\n")
}

func dateLabel(date time.Time) string {
	return date.UTC().Format("Jan 02, 2006")
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeForHTML escapes model-supplied text for Telegram's HTML parse mode.
func EscapeForHTML(text string) string {
	return htmlEscaper.Replace(text)
}
