package api

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"
)

// GetTopics fetches the public topic catalogue.
func (c *Client) GetTopics(ctx context.Context) ([]Topic, error) {
	var resp struct {
		Topics []Topic `json:"topics"`
	}
	if err := c.get(ctx, "/topics", &resp); err != nil {
		return nil, fmt.Errorf("fetching topics: %w", err)
	}
	return resp.Topics, nil
}

// Chat sends a message to the tutor. An empty chatID starts a new
// conversation; the reply carries the ID to continue it.
func (c *Client) Chat(ctx context.Context, topic, message, chatID string) (*ChatReply, error) {
	body := struct {
		Message string `json:"message"`
		Topic   string `json:"topic"`
		ChatID  string `json:"chat_id,omitempty"`
	}{message, topic, chatID}

	var reply ChatReply
	if err := c.post(ctx, "/chat", body, &reply); err != nil {
		return nil, fmt.Errorf("sending chat message: %w", err)
	}
	return &reply, nil
}

// GetChatHistory lists the user's conversations, newest first.
func (c *Client) GetChatHistory(ctx context.Context) ([]Chat, error) {
	var chats []Chat
	if err := c.get(ctx, "/chat/history", &chats); err != nil {
		return nil, fmt.Errorf("fetching chat history: %w", err)
	}
	return chats, nil
}

// GetChat fetches a single conversation.
func (c *Client) GetChat(ctx context.Context, id string) (*Chat, error) {
	var chat Chat
	if err := c.get(ctx, "/chat/"+url.PathEscape(id), &chat); err != nil {
		return nil, fmt.Errorf("fetching chat %s: %w", id, err)
	}
	return &chat, nil
}

// Summarize asks the backend for a short summary of content.
func (c *Client) Summarize(ctx context.Context, content string) (string, error) {
	var resp struct {
		Summary string `json:"summary"`
	}
	body := map[string]string{"content": content}
	if err := c.post(ctx, "/summarize", body, &resp); err != nil {
		return "", fmt.Errorf("summarizing: %w", err)
	}
	return resp.Summary, nil
}

// GetProgress fetches the user's progress record.
func (c *Client) GetProgress(ctx context.Context) (*Progress, error) {
	var p Progress
	if err := c.get(ctx, "/progress", &p); err != nil {
		return nil, fmt.Errorf("fetching progress: %w", err)
	}
	return &p, nil
}

// Overview is everything the dashboard shows. Each section carries its
// own error so one failing endpoint does not blank the others.
type Overview struct {
	Progress    *Progress
	ProgressErr error
	Results     []QuizResult
	ResultsErr  error
	Chats       []Chat
	ChatsErr    error
}

// GetOverview fetches progress, quiz results and chat history
// concurrently.
func (c *Client) GetOverview(ctx context.Context) (*Overview, error) {
	var (
		ov Overview
		mu sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.GetProgress(ctx)
		mu.Lock()
		ov.Progress, ov.ProgressErr = p, err
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		r, err := c.GetQuizResults(ctx)
		mu.Lock()
		ov.Results, ov.ResultsErr = r, err
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		ch, err := c.GetChatHistory(ctx)
		mu.Lock()
		ov.Chats, ov.ChatsErr = ch, err
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
