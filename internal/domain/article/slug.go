package article

import "github.com/riskibarqy/football-portal/internal/platform/text"

func Slugify(title string) string {
	return text.Slugify(title)
}
