package notify

import (
	"context"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Notifier pushes operation summaries to a Telegram chat. Sends are
// buffered and rate-limited; when the buffer is full messages are
// dropped rather than blocking an operation.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	msgChan  chan string
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New returns a Notifier, or nil when token is empty — a nil Notifier
// is valid and drops everything.
func New(token string, chatID int64) (*Notifier, error) {
	if token == "" {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	n := &Notifier{
		bot:      bot,
		chatID:   chatID,
		msgChan:  make(chan string, 1000),
		stopChan: make(chan struct{}),
	}

	n.wg.Add(1)
	go n.worker()

	return n, nil
}

// Send queues a message. Never blocks.
func (n *Notifier) Send(msg string) {
	if n == nil {
		return
	}
	select {
	case n.msgChan <- msg:
	default:
		// Drop
	}
}

func (n *Notifier) Close() {
	if n == nil {
		return
	}
	close(n.stopChan)
	n.wg.Wait()
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	limiter := rate.NewLimiter(25, 1) // Telegram allows ~30 msgs/sec

	for {
		select {
		case <-n.stopChan:
			return
		case msg := <-n.msgChan:
			limiter.Wait(context.Background())
			if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, msg)); err != nil {
				log.Printf("Telegram send failed: %v", err)
			}
		}
	}
}
