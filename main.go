package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ERINGRYD/estudaqui-hj-28/internal/bot"
	"github.com/ERINGRYD/estudaqui-hj-28/internal/database"
	"github.com/ERINGRYD/estudaqui-hj-28/internal/scheduler"
	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	scheduleRepo := database.NewScheduleRepository(db)

	var notifier scheduler.Notifier = logNotifier{}
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chat := os.Getenv("TELEGRAM_CHAT_ID")
	if token != "" && chat != "" {
		chatID, err := strconv.ParseInt(chat, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		tg, err := bot.NewNotifier(token, chatID)
		if err != nil {
			log.Fatalf("Failed to create Telegram notifier: %v", err)
		}
		notifier = tg
	}

	s := scheduler.New(scheduleRepo, notifier)
	s.Start()
	defer s.Stop()

	log.Println("Review scheduler started. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
}

// logNotifier is the fallback when no Telegram chat is configured.
type logNotifier struct{}

func (logNotifier) SendDueDigest(totalDue int, topics []models.TopicDueSummary) error {
	log.Printf("%d reviews due across %d topics", totalDue, len(topics))
	return nil
}
