package hosting

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/contre95/songstats/src/features/catalog"
	"github.com/contre95/songstats/src/features/charts"
	"github.com/contre95/songstats/src/features/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramCommandHandler interface that each feature implements
type TelegramCommandHandler interface {
	HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error
	GetCommands() map[string]string                                             // Returns command -> description mapping
	HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool // Handle feature-specific callbacks
}

// commandMap routes each bot command to the feature that serves it.
var commandMap = map[string]string{
	"stats":  "catalog",
	"genres": "catalog",
	"top":    "catalog",
	"find":   "catalog",
	"chart":  "charts",
	"config": "config",
}

// TelegramBot handles Telegram bot operations
type TelegramBot struct {
	bot      *tgbotapi.BotAPI
	handlers map[string]TelegramCommandHandler
	updates  tgbotapi.UpdatesChannel
	stopChan chan struct{}
}

// NewTelegramBot creates a new Telegram bot instance
func NewTelegramBot(cfg *config.Manager, catalogService *catalog.Service, chartsService *charts.Service) (*TelegramBot, error) {
	telegramConfig := cfg.Get().Telegram

	if !telegramConfig.Enabled {
		return nil, fmt.Errorf("telegram bot is disabled in configuration")
	}

	if telegramConfig.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}

	bot, err := tgbotapi.NewBotAPI(telegramConfig.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	slog.Info("Telegram bot initialized", "username", bot.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	telegramBot := &TelegramBot{
		bot:      bot,
		handlers: make(map[string]TelegramCommandHandler),
		updates:  bot.GetUpdatesChan(updateConfig),
		stopChan: make(chan struct{}),
	}

	// Register feature handlers
	telegramBot.RegisterHandler("catalog", catalog.NewTelegramHandler(catalogService))
	telegramBot.RegisterHandler("charts", charts.NewTelegramHandler(chartsService))
	telegramBot.RegisterHandler("config", config.NewTelegramHandler(cfg))

	return telegramBot, nil
}

// RegisterHandler registers a feature's command handler
func (t *TelegramBot) RegisterHandler(feature string, handler TelegramCommandHandler) {
	t.handlers[feature] = handler
	slog.Debug("Registered Telegram handler", "feature", feature)
}

// Start begins listening for Telegram updates
func (t *TelegramBot) Start() {
	slog.Info("Starting Telegram bot listener")

	for {
		select {
		case update := <-t.updates:
			if update.Message != nil {
				go t.handleMessage(update)
			}
			if update.CallbackQuery != nil {
				go t.handleCallbackQuery(update)
			}
		case <-t.stopChan:
			slog.Info("Stopping Telegram bot listener")
			return
		}
	}
}

// Stop gracefully stops the bot
func (t *TelegramBot) Stop() {
	t.bot.StopReceivingUpdates()
	close(t.stopChan)
}

// handleMessage processes incoming messages
func (t *TelegramBot) handleMessage(update tgbotapi.Update) {
	message := update.Message
	if message.IsCommand() {
		t.handleCommand(message)
		return
	}
	t.sendMessage(message.Chat.ID, "🤖 Send /help to see available commands")
}

// handleCommand processes bot commands
func (t *TelegramBot) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command := message.Command()
	args := message.CommandArguments()

	slog.Debug("Processing command", "command", command, "args", args, "chat_id", chatID)

	switch command {
	case "help", "start", "menu":
		t.handleHelp(chatID)
	default:
		if err := t.routeCommand(command, args, chatID); err != nil {
			slog.Error("Failed to handle command", "command", command, "error", err)
			t.sendMessage(chatID, "❌ Failed to process command")
		}
	}
}

// routeCommand routes commands to the appropriate feature handler
func (t *TelegramBot) routeCommand(command, args string, chatID int64) error {
	feature, exists := commandMap[command]
	if !exists {
		t.sendMessage(chatID, "❌ Unknown command. Send /help to see available commands.")
		return nil
	}

	handler, exists := t.handlers[feature]
	if !exists {
		t.sendMessage(chatID, fmt.Sprintf("❌ %s feature not available", escapeMarkdown(feature)))
		return nil
	}

	return handler.HandleCommand(t.bot, chatID, command, args)
}

// escapeMarkdown escapes the characters legacy Markdown treats as markup
func escapeMarkdown(text string) string {
	return strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[").Replace(text)
}

// sendMessage sends a message to the specified chat
func (t *TelegramBot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := t.bot.Send(msg)
	if err != nil {
		slog.Error("Failed to send message", "error", err, "chat_id", chatID)
	}
}

// handleCallbackQuery handles callback queries from inline keyboards
func (t *TelegramBot) handleCallbackQuery(update tgbotapi.Update) {
	callback := update.CallbackQuery

	if command, ok := strings.CutPrefix(callback.Data, "menu_"); ok {
		t.bot.Request(tgbotapi.NewCallback(callback.ID, ""))
		if err := t.routeCommand(command, "", callback.Message.Chat.ID); err != nil {
			slog.Error("Failed to handle menu command", "command", command, "error", err)
		}
		return
	}

	for _, handler := range t.handlers {
		if handler.HandleCallback(t.bot, callback) {
			break
		}
	}
	t.bot.Request(tgbotapi.NewCallback(callback.ID, ""))
}

// helpText lists every registered command with its description
func (t *TelegramBot) helpText() string {
	lines := []string{}
	for _, handler := range t.handlers {
		for cmd, desc := range handler.GetCommands() {
			lines = append(lines, fmt.Sprintf("/%s - %s", cmd, desc))
		}
	}
	slices.Sort(lines)
	return "*🎵 SongStats*\n\n" + escapeMarkdown(strings.Join(lines, "\n"))
}

// handleHelp shows the command list with quick action buttons
func (t *TelegramBot) handleHelp(chatID int64) {
	buttons := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", "menu_stats"),
			tgbotapi.NewInlineKeyboardButtonData("🎼 Genres", "menu_genres"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("🏆 Top artists", "menu_top"),
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Config", "menu_config"),
		},
	}

	msg := tgbotapi.NewMessage(chatID, t.helpText())
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("Failed to send menu", "error", err, "chat_id", chatID)
	}
}
