package api

import (
	"context"
	"fmt"
)

// GenerateQuiz asks the backend for n multiple-choice questions on topic.
func (c *Client) GenerateQuiz(ctx context.Context, topic string, n int) (*Quiz, error) {
	body := struct {
		Topic        string `json:"topic"`
		NumQuestions int    `json:"num_questions"`
	}{topic, n}

	var quiz Quiz
	if err := c.post(ctx, "/quiz/generate", body, &quiz); err != nil {
		return nil, fmt.Errorf("generating quiz: %w", err)
	}
	return &quiz, nil
}

// SaveQuizResult records a finished quiz and returns the XP it earned.
func (c *Client) SaveQuizResult(ctx context.Context, topic string, score, total int, questions []QuizQuestion) (int, error) {
	if questions == nil {
		questions = []QuizQuestion{}
	}
	body := struct {
		Topic     string         `json:"topic"`
		Score     int            `json:"score"`
		Total     int            `json:"total"`
		Questions []QuizQuestion `json:"questions"`
	}{topic, score, total, questions}

	var resp struct {
		XPEarned int `json:"xp_earned"`
	}
	if err := c.post(ctx, "/quiz/save", body, &resp); err != nil {
		return 0, fmt.Errorf("saving quiz result: %w", err)
	}
	return resp.XPEarned, nil
}

// GetQuizResults lists saved quiz attempts, newest first.
func (c *Client) GetQuizResults(ctx context.Context) ([]QuizResult, error) {
	var results []QuizResult
	if err := c.get(ctx, "/quiz/results", &results); err != nil {
		return nil, fmt.Errorf("fetching quiz results: %w", err)
	}
	return results, nil
}
