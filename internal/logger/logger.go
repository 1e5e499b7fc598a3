package logger

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lyricduet/duetbot/internal/utils/e"
)

var (
	mu        sync.RWMutex
	channelID int64
	botClient BotClient
)

type BotClient interface {
	SendMessage(chatID int64, text string) error
}

// Init wires the optional Telegram log channel. Before Init (or with a zero
// channel id) everything still goes to stdout.
func Init(client BotClient, logChannelID int64) {
	mu.Lock()
	defer mu.Unlock()
	botClient = client
	channelID = logChannelID
}

func Info(message string) {
	sendLog("ℹ️ INFO", message)
}

func Error(message string) {
	sendLog("❌ ERROR", message)
}

func Debug(message string) {
	sendLog("🔍 DEBUG", message)
}

func Success(message string) {
	sendLog("✅ SUCCESS", message)
}

func sendLog(prefix, message string) {
	log.Printf("%s %s", prefix, message)

	mu.RLock()
	client := botClient
	channel := channelID
	mu.RUnlock()

	if client == nil || channel == 0 {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] %s\n%s", timestamp, prefix, message)

	go func() {
		if err := client.SendMessage(channel, logMessage); err != nil {
			log.Printf("failed to send log to channel: %v\nlog was: %s", err, logMessage)
		}
	}()
}

// LogWithErr logs the message with the error attached (when there is one)
// and returns the wrapped error for the caller to propagate.
func LogWithErr(message string, err error) error {
	if err == nil {
		Info(message)
		return nil
	}

	Error(fmt.Sprintf("%s\nError: %v", message, err))
	return e.Wrap(message, err)
}
