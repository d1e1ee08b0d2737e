package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CommandHandler is called when a user command is received.
type CommandHandler func(command string) string

// pollRetryDelay is the pause after a failed getUpdates call.
const pollRetryDelay = 5 * time.Second

type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// StartPolling long-polls for commands and answers them until ctx is cancelled.
// Only messages from the configured chat reach handler.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	if !t.Enabled() {
		log.Println("[INFO] telegram disabled, command polling not started")
		return
	}
	log.Println("[INFO] Telegram polling started")

	client := &http.Client{Timeout: 35 * time.Second}
	if t.Client != nil {
		client.Transport = t.Client.Transport
	}
	offset := 0
	for ctx.Err() == nil {
		updates, err := t.getUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("[WARN] polling request failed: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(pollRetryDelay):
			}
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			t.dispatch(u, handler)
		}
	}
	log.Println("[INFO] Telegram polling stopped")
}

func (t *TelegramNotifier) getUpdates(ctx context.Context, client *http.Client, offset int) ([]telegramUpdate, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.endpoint("getUpdates"), offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result struct {
		OK     bool             `json:"ok"`
		Result []telegramUpdate `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("getUpdates: status %d", resp.StatusCode)
	}
	return result.Result, nil
}

func (t *TelegramNotifier) dispatch(u telegramUpdate, handler CommandHandler) {
	if u.Message == nil || u.Message.Text == "" {
		return
	}
	chat := strconv.FormatInt(u.Message.Chat.ID, 10)
	if chat != t.ChatID {
		log.Printf("[WARN] ignoring command from unauthorised chat %s", chat)
		return
	}

	text := strings.TrimSpace(u.Message.Text)
	log.Printf("[INFO] received command: %s", text)
	if reply := handler(text); reply != "" {
		if err := t.Send(reply); err != nil {
			log.Printf("[ERROR] send reply: %v", err)
		}
	}
}
