package summary

import (
	"fmt"
	"strings"

	"github.com/guizot/tech-news-digest/internal/model"
)

func buildPrompt(items []model.Item) string {
	var articles strings.Builder
	for i, item := range items {
		articles.WriteString(fmt.Sprintf("%d. [%s] %s (%s)\n   %s\n",
			i+1,
			item.SourceName,
			item.Title,
			item.Date.UTC().Format("2006-01-02 15:04 UTC"),
			item.Link,
		))
		if item.Summary != "" {
			articles.WriteString("   " + item.Summary + "\n")
		}
	}

	var sb strings.Builder
	sb.WriteString("Condense the articles below into the day's top stories.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Pick the 3 to 5 most important stories.\n")
	sb.WriteString("- Merge duplicate coverage of the same story.\n")
	sb.WriteString("- For each story write a short headline, pick ONE source URL from the list, and write 1 to 3 bullet sentences.\n")
	sb.WriteString("- Do NOT invent URLs; only use URLs that appear in the article list.\n")
	sb.WriteString("- Tone: professional, informative.\n")
	sb.WriteString("- Reply with JSON only, no prose, matching exactly:\n")
	sb.WriteString(`{"stories":[{"headline":"...","link":"https://...","bullets":["...","..."]}]}`)
	sb.WriteString("\n\nArticles:\n")
	sb.WriteString(articles.String())

	return sb.String()
}
