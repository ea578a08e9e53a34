package charts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the charts feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the charts feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand sends a chart image, rendering it first when needed
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	name := strings.TrimSpace(args)
	if command != "chart" || name == "" {
		return h.send(bot, chatID, chartUsage())
	}

	chart, err := h.service.Render(context.Background(), name)
	switch {
	case errors.Is(err, ErrUnknownChart):
		return h.send(bot, chatID, fmt.Sprintf("❌ Unknown chart `%s`\n\n%s", name, chartUsage()))
	case errors.Is(err, ErrNoData):
		return h.send(bot, chatID, "📭 No dataset loaded")
	case err != nil:
		return err
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(chart.Path()))
	photo.Caption = chart.Title
	_, err = bot.Send(photo)
	return err
}

func (h *TelegramHandler) send(bot *tgbotapi.BotAPI, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := bot.Send(msg)
	return err
}

func chartUsage() string {
	var b strings.Builder
	b.WriteString("📈 Usage: /chart <name>\n\nAvailable charts:\n")
	for _, name := range Names() {
		fmt.Fprintf(&b, "• `%s`\n", name)
	}
	return b.String()
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"chart": "Send a chart image (/chart <name>)",
	}
}

// HandleCallback handles callback queries for this feature (charts has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}
