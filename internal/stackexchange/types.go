package stackexchange

import "html"

// Owner is the author block shared by questions and answers.
type Owner struct {
	DisplayName string `json:"display_name"`
	UserID      int64  `json:"user_id"`
}

// Question is the subset of Stack Exchange question fields required by the app.
type Question struct {
	ID               int64    `json:"question_id"`
	Title            string   `json:"title"`
	Body             string   `json:"body"`
	Score            int      `json:"score"`
	Tags             []string `json:"tags"`
	Owner            Owner    `json:"owner"`
	AnswerCount      int      `json:"answer_count"`
	IsAnswered       bool     `json:"is_answered"`
	AcceptedAnswerID int64    `json:"accepted_answer_id"`
	Link             string   `json:"link"`
}

// HasAcceptedAnswer reports whether the asker accepted one of the answers.
func (q Question) HasAcceptedAnswer() bool {
	return q.AcceptedAnswerID != 0
}

// Answer is the subset of Stack Exchange answer fields required by the app.
type Answer struct {
	ID         int64  `json:"answer_id"`
	QuestionID int64  `json:"question_id"`
	Body       string `json:"body"`
	Score      int    `json:"score"`
	IsAccepted bool   `json:"is_accepted"`
	Owner      Owner  `json:"owner"`
}

// Author returns the decoded display name. The API sends it HTML-escaped.
func (o Owner) Author() string {
	return html.UnescapeString(o.DisplayName)
}

// wrapper is the common response envelope of the API.
type wrapper[T any] struct {
	Items          []T    `json:"items"`
	HasMore        bool   `json:"has_more"`
	QuotaMax       int    `json:"quota_max"`
	QuotaRemaining int    `json:"quota_remaining"`
	Backoff        int    `json:"backoff"`
	ErrorID        int    `json:"error_id"`
	ErrorName      string `json:"error_name"`
	ErrorMessage   string `json:"error_message"`
}

// DisplayTitle returns the decoded question title.
func (q Question) DisplayTitle() string {
	return html.UnescapeString(q.Title)
}
