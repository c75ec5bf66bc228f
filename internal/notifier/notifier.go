package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Notifier struct {
	sender    MessageSender
	channelID int64
}

func New(sender MessageSender, channelID int64) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
	}
}

// Post sends one HTML-formatted message to the channel. No retries: a send
// failure fails the run.
func (n *Notifier) Post(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.channelID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("sending message to channel %d: %w", n.channelID, err)
	}

	return nil
}
