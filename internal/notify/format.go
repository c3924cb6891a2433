package notify

import (
	"fmt"
	"strings"

	"github.com/banterworks/pitchside/internal/sheets"
	"github.com/banterworks/pitchside/pkg/models"
)

// FormatSummary renders the end-of-run message sent after a pipeline
// run completes.
func FormatSummary(result models.RunResult) string {
	if result.NoTopics {
		return fmt.Sprintf(
			"😴 <b>Quiet day.</b>\n\nChecked %d posts and %d articles but found nothing worth a script.",
			result.TrendCount, result.NewsCount)
	}

	var topics strings.Builder
	for i, rt := range result.Considered {
		if i >= 5 {
			break
		}
		marker := " "
		if i == 0 {
			marker = "→"
		}
		topics.WriteString(fmt.Sprintf("\n%s %d. [%d/10] %s", marker, i+1, rt.Score, truncate(rt.Topic, 50)))
	}

	return fmt.Sprintf(
		"✅ <b>Pipeline Complete!</b>\n\n"+
			"<b>Sources:</b> %d posts, %d articles\n\n"+
			"<b>Topics Ranked:</b>%s\n\n"+
			"📌 <b>Winner:</b> %s\n"+
			"🔥 <b>Score:</b> %d/10\n\n"+
			"📝 %d scripts have been added to your Google Sheet.",
		result.TrendCount, result.NewsCount, topics.String(),
		truncate(result.Topic, 60), result.Score, len(result.Scripts))
}

// FormatRecent renders the /recent reply from archived sheet rows.
func FormatRecent(entries []sheets.Entry) string {
	if len(entries) == 0 {
		return "No recent entries found."
	}
	var b strings.Builder
	b.WriteString("📋 <b>Recent Topics:</b>\n\n")
	for i, e := range entries {
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}
		b.WriteString(fmt.Sprintf("%d. <b>%s</b>\n   Score: %s | %s\n\n",
			i+1, truncate(e.Topic, 50), e.Score, date))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
