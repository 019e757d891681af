package api

// User is the identity the backend returns for a session.
type User struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Picture           string   `json:"picture,omitempty"`
	LearningInterests []string `json:"learning_interests,omitempty"`
}

// DisplayName falls back to the email when the name is empty.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Topic is one entry of the public topic catalogue.
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Chat is a stored conversation on one topic.
type Chat struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Topic     string        `json:"topic"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt string        `json:"created_at"`
}

// ChatReply is the tutor's answer to one message.
type ChatReply struct {
	ChatID    string `json:"chat_id"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	Topic     string         `json:"topic"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizResult is a saved, scored quiz attempt.
type QuizResult struct {
	ID        string         `json:"id"`
	Topic     string         `json:"topic"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt string         `json:"created_at"`
}

// Progress is the user's learning progress as tracked by the backend.
type Progress struct {
	UserID         string   `json:"user_id"`
	XPPoints       int      `json:"xp_points"`
	TopicsLearned  []string `json:"topics_learned"`
	LearningStreak int      `json:"learning_streak"`
	LastActivity   string   `json:"last_activity"`
}
