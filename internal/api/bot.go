package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"omr-bot/internal/container"
	"omr-bot/internal/domain/entity"
	"omr-bot/internal/logger"
)

const (
	msgStart = `👋 Привет! Я бот для распознавания бланков ответов.

📸 Отправьте мне фото заполненного бланка, и я прочитаю номер ученика, код варианта и ответы.

📋 Команды:
/scan — распознать бланк
/last — последний результат
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /scan
2️⃣ Сфотографируйте бланк целиком
3️⃣ Вы получите номер, код варианта, ответы и фото с подсветкой отметок

💡 Рекомендации:
• Бланк может быть повернут на 90° или 180°, бот это исправит
• Снимайте сверху, без сильного наклона
• Закрашивайте кружки полностью

📋 Команды:
/scan — распознать бланк
/last — последний результат
/cancel — отменить операцию`

	msgAwaitingSheet   = "📸 Отправьте фото бланка ответов."
	msgCancelled       = "❌ Операция отменена. Отправьте /scan для нового бланка."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото бланка. Начать: /scan"
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Распознаю бланк..."
	msgNoLast          = "📭 Вы ещё не распознали ни одного бланка."
	msgNoOrientation   = "⚠️ Не удалось найти на фото разметку бланка. Требуется ручной ввод."
	msgDetectorDown    = "⚠️ Сервис распознавания недоступен. Попробуйте позже."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	container *container.Container
	log       *logger.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info("authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		container: c,
		log:       log,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if _, err := b.container.UserService.Get(ctx, msg.From.ID, msg.Chat.ID); err != nil {
		b.log.Error("get user: %v", err)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	users := b.container.UserService
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := users.Cancel(ctx, userID, chatID); err != nil {
			b.log.Error("reset user %d: %v", userID, err)
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "scan":
		if _, err := users.BeginScan(ctx, userID, chatID); err != nil {
			b.log.Error("begin scan for user %d: %v", userID, err)
		}
		b.sendMessage(chatID, msgAwaitingSheet)

	case "cancel":
		if _, err := users.Cancel(ctx, userID, chatID); err != nil {
			b.log.Error("cancel for user %d: %v", userID, err)
		}
		b.sendMessage(chatID, msgCancelled)

	case "last":
		result, err := users.LastResult(ctx, userID, chatID)
		if err != nil {
			b.log.Error("last result for user %d: %v", userID, err)
			return
		}
		if result == nil {
			b.sendMessage(chatID, msgNoLast)
			return
		}
		b.sendMessage(chatID, formatResult(result))

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto скачивает фото и отдаёт его на распознавание
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Берём файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	data, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.log.Error("download photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	b.log.Info("user %d sent sheet: %d bytes", msg.From.ID, len(data))

	out, err := b.container.ScanService.ProcessSheetPhoto(ctx, msg.From.ID, msg.Chat.ID, data)
	if err != nil {
		b.log.Warning("decode sheet for user %d: %v", msg.From.ID, err)
		b.sendMessage(msg.Chat.ID, errorMessage(err))
		return
	}

	text := formatResult(out.Result)
	if len(out.Annotated) == 0 {
		b.sendMessage(msg.Chat.ID, text)
		return
	}

	reply := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "sheet.jpg", Bytes: out.Annotated})
	reply.Caption = text
	if _, err := b.api.Send(reply); err != nil {
		b.log.Error("send annotated sheet: %v", err)
		b.sendMessage(msg.Chat.ID, text)
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrNoOrientation):
		return msgNoOrientation
	case errors.Is(err, entity.ErrDetector):
		return msgDetectorDown
	default:
		return msgProcessingError
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message: %v", err)
	}
}
