package model

type QuestionInfo struct {
	Question          string            `json:"question"`
	Tags              map[string]string `json:"tags,omitempty"`
	PreviousQuestions []string          `json:"previous_questions,omitempty"`
}

// LearningPathInfo describes the learning path a user asked for.
type LearningPathInfo struct {
	Topic string `json:"topic"`
	Level string `json:"level,omitempty"`
}
