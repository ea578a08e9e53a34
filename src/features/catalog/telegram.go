package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/contre95/songstats/src/music"
	"github.com/contre95/songstats/src/query"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the catalog feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the catalog feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes catalog-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	ctx := context.Background()

	var text string
	switch command {
	case "stats":
		text = formatStats(h.service.Stats(ctx))
	case "genres":
		text = formatRanking("🎼 *Genres*", h.service.GenreDistribution(ctx))
	case "top":
		text = formatRanking("🏆 *Top artists*", h.service.TopArtists(ctx))
	case "find":
		artist := strings.TrimSpace(args)
		if artist == "" {
			text = "❌ Usage: /find <artist>"
			break
		}
		text = formatTracks(artist, h.service.Filter(ctx, query.Criteria{Artist: artist}))
	default:
		text = "❌ Unknown catalog command. Use /stats, /genres, /top or /find <artist>"
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := bot.Send(msg)
	return err
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"stats":  "Show catalogue statistics",
		"genres": "Show tracks per genre",
		"top":    "Show the artists with the most tracks",
		"find":   "Find tracks by artist (/find <artist>)",
	}
}

// HandleCallback handles callback queries for this feature (catalog has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

const noDataset = "📭 No dataset loaded"

func formatStats(s *query.Summary) string {
	if s == nil {
		return noDataset
	}
	return fmt.Sprintf("📊 *Catalogue Statistics*\n\n"+
		"🎵 Songs: `%d`\n"+
		"👤 Artists: `%d`\n"+
		"🎼 Genres: `%d`\n"+
		"⭐ Avg rating: `%.1f`\n"+
		"▶️ Avg plays: `%.2fM`\n"+
		"📅 Years: `%s`",
		s.TotalSongs, s.TotalArtists, s.TotalGenres, s.AvgRating, s.AvgPlayCount, s.YearRange)
}

func formatRanking(title string, r query.Ranking) string {
	if len(r) == 0 {
		return noDataset
	}
	var b strings.Builder
	b.WriteString(title + "\n\n")
	for i, c := range r {
		fmt.Fprintf(&b, "%d. %s `%d`\n", i+1, c.Key, c.Value)
	}
	return b.String()
}

func formatTracks(artist string, tracks []music.Track) string {
	if len(tracks) == 0 {
		return fmt.Sprintf("🔍 No tracks found for `%s`", artist)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 *%d tracks for* `%s`\n\n", len(tracks), artist)
	for _, t := range tracks {
		fmt.Fprintf(&b, "• %s - %s (%d) ⭐ %.1f\n", t.Title, t.Artist, t.ReleaseYear, t.Rating)
	}
	return b.String()
}
