package domain

import (
	"strings"
	"time"
)

// Label is the verdict bucket of a classification.
type Label string

const (
	LabelTrue    Label = "True"
	LabelFake    Label = "Fake"
	LabelUnknown Label = "Unknown"
	// LabelError is reserved for failed model calls; the model itself cannot produce it.
	LabelError Label = "Error"
)

// NormalizeLabel maps free-text model verdicts onto the known buckets.
func NormalizeLabel(raw string) Label {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "real", "verified", "accurate":
		return LabelTrue
	case "fake", "false", "misleading", "hoax":
		return LabelFake
	default:
		return LabelUnknown
	}
}

// QuizQuestion is a 3-option multiple choice question generated alongside a verdict.
// Selected and IsCorrect stay nil until the user answers.
type QuizQuestion struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Answer    string   `json:"answer"`
	Selected  *string  `json:"selected,omitempty"`
	IsCorrect *bool    `json:"is_correct,omitempty"`
}

// ClassificationResult is the structured verdict for one piece of news text.
type ClassificationResult struct {
	Label       Label          `json:"label"`
	Confidence  float64        `json:"confidence"`
	Source      string         `json:"source"`
	Explanation string         `json:"explanation"`
	Quiz        []QuizQuestion `json:"quiz"`
}

// ErrorResult builds the result reported when the model could not be reached or
// answered with an unusable envelope.
func ErrorResult(explanation string) ClassificationResult {
	return ClassificationResult{
		Label:       LabelError,
		Confidence:  0,
		Source:      "",
		Explanation: explanation,
		Quiz:        []QuizQuestion{},
	}
}

// CloneQuiz returns a deep copy of the quiz so a session can record answers without
// touching the stored result.
func (r ClassificationResult) CloneQuiz() []QuizQuestion {
	out := make([]QuizQuestion, len(r.Quiz))
	for i, q := range r.Quiz {
		out[i] = q.clone()
	}
	return out
}

func (q QuizQuestion) clone() QuizQuestion {
	c := QuizQuestion{
		Question: q.Question,
		Options:  append([]string(nil), q.Options...),
		Answer:   q.Answer,
	}
	if q.Selected != nil {
		s := *q.Selected
		c.Selected = &s
	}
	if q.IsCorrect != nil {
		b := *q.IsCorrect
		c.IsCorrect = &b
	}
	return c
}

// SessionState is everything one browser session holds between requests.
type SessionState struct {
	ID              string                `json:"id"`
	Result          *ClassificationResult `json:"result,omitempty"`
	Quiz            []QuizQuestion        `json:"quiz"`
	CurrentQuestion int                   `json:"current_question"`
	Score           int                   `json:"score"`
	Streak          int                   `json:"streak"`
	LastVisit       string                `json:"last_visit,omitempty"` // YYYY-MM-DD
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// Clone returns a copy that shares no mutable state with s.
func (s *SessionState) Clone() *SessionState {
	c := *s
	if s.Result != nil {
		r := *s.Result
		r.Quiz = s.Result.CloneQuiz()
		c.Result = &r
	}
	c.Quiz = make([]QuizQuestion, len(s.Quiz))
	for i, q := range s.Quiz {
		c.Quiz[i] = q.clone()
	}
	return &c
}

// QuestionView is the current quiz question as presented to the user.
type QuestionView struct {
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Score    int      `json:"score"`
	Streak   int      `json:"streak"`
}

// AnswerResult summarizes the outcome of answering the current question.
type AnswerResult struct {
	Index    int    `json:"index"`
	Selected string `json:"selected"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
	Score    int    `json:"score"`
	Finished bool   `json:"finished"`
}

// QuizSummary is the final view after (or while) taking a quiz.
type QuizSummary struct {
	Result ClassificationResult `json:"result"`
	Quiz   []QuizQuestion       `json:"quiz"`
	Score  int                  `json:"score"`
	Total  int                  `json:"total"`
	Streak int                  `json:"streak"`
}
