package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/guizot/tech-news-digest/internal/model"
)

type storiesReply struct {
	Stories []model.Story `json:"stories"`
}

// parseStories decodes the model reply into stories, discarding entries with
// no headline or no bullets and clamping each story to maxBullets.
func parseStories(raw string) ([]model.Story, error) {
	var reply storiesReply
	if err := json.Unmarshal([]byte(stripFence(raw)), &reply); err != nil {
		return nil, fmt.Errorf("decoding model reply: %w", err)
	}

	var stories []model.Story
	for _, story := range reply.Stories {
		story.Headline = strings.TrimSpace(story.Headline)
		story.Link = strings.TrimSpace(story.Link)
		story.Bullets = trimBullets(story.Bullets)

		if story.Headline == "" || len(story.Bullets) == 0 {
			continue
		}
		if len(story.Bullets) > maxBullets {
			story.Bullets = story.Bullets[:maxBullets]
		}

		stories = append(stories, story)
	}

	if len(stories) == 0 {
		return nil, errors.New("model reply contained no usable stories")
	}
	if len(stories) > maxStories {
		stories = stories[:maxStories]
	}

	return stories, nil
}

func trimBullets(bullets []string) []string {
	var trimmed []string
	for _, bullet := range bullets {
		if bullet = strings.TrimSpace(bullet); bullet != "" {
			trimmed = append(trimmed, bullet)
		}
	}
	return trimmed
}

// stripFence unwraps a ```json fenced block, which chat models add even when
// told not to.
func stripFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	if i := strings.LastIndex(raw, "```"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}
