package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"factcheck-quiz-service/internal/domain"
)

// dateLayout is how last-visit dates are kept in the session.
const dateLayout = "2006-01-02"

// SessionRepository abstracts where per-session state lives (in-memory, Redis).
// Implementations return domain.ErrSessionNotFound for unknown or expired ids and
// must not hand out state that aliases what they store.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.SessionState, error)
	Save(ctx context.Context, state *domain.SessionState) error
	Delete(ctx context.Context, id string) error
}

// Classifier turns news text into a verdict. It never fails; problems are reported
// inside the result.
type Classifier interface {
	Check(ctx context.Context, text string) domain.ClassificationResult
}

// QuizService contains the fact-check and quiz use cases for one browser session.
type QuizService struct {
	sessions   SessionRepository
	classifier Classifier
	now        func() time.Time

	// mu serializes read-modify-write cycles on session state within this process.
	mu sync.Mutex
}

func NewQuizService(sessions SessionRepository, classifier Classifier) *QuizService {
	return NewQuizServiceWithClock(sessions, classifier, time.Now)
}

// NewQuizServiceWithClock is used by tests for deterministic dates.
func NewQuizServiceWithClock(sessions SessionRepository, classifier Classifier, now func() time.Time) *QuizService {
	return &QuizService{sessions: sessions, classifier: classifier, now: now}
}

// Visit records a visit for the session, creating it when needed, and returns the
// updated state with its streak.
func (s *QuizService) Visit(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	state.Streak = nextStreak(state.Streak, state.LastVisit, today)
	state.LastVisit = today.Format(dateLayout)
	if err := s.save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Classify runs the fact-check pipeline without touching any session.
func (s *QuizService) Classify(ctx context.Context, text string) (domain.ClassificationResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ClassificationResult{}, domain.ErrEmptyText
	}
	return s.classifier.Check(ctx, text), nil
}

// Analyze classifies text and makes the result the session's current analysis.
// The quiz and score start over.
func (s *QuizService) Analyze(ctx context.Context, sessionID, text string) (domain.ClassificationResult, error) {
	result, err := s.Classify(ctx, text)
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	stored := result
	stored.Quiz = result.CloneQuiz()
	state.Result = &stored
	state.Quiz = result.CloneQuiz()
	state.CurrentQuestion = 0
	state.Score = 0
	if err := s.save(ctx, state); err != nil {
		return domain.ClassificationResult{}, err
	}
	return result, nil
}

// Analysis returns the session's current analysis.
func (s *QuizService) Analysis(ctx context.Context, sessionID string) (domain.ClassificationResult, error) {
	state, err := s.analyzed(ctx, sessionID)
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	return *state.Result, nil
}

// CurrentQuestion returns the next unanswered question.
func (s *QuizService) CurrentQuestion(ctx context.Context, sessionID string) (domain.QuestionView, error) {
	state, err := s.analyzed(ctx, sessionID)
	if err != nil {
		return domain.QuestionView{}, err
	}
	if err := quizOpen(state); err != nil {
		return domain.QuestionView{}, err
	}
	return questionView(state), nil
}

// Answer records the selected option for the current question and advances the quiz.
func (s *QuizService) Answer(ctx context.Context, sessionID, selected string) (domain.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.analyzed(ctx, sessionID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if err := quizOpen(state); err != nil {
		return domain.AnswerResult{}, err
	}

	index := state.CurrentQuestion
	question := &state.Quiz[index]
	correct := selected == question.Answer
	question.Selected = &selected
	question.IsCorrect = &correct
	if correct {
		state.Score++
	}
	state.CurrentQuestion++

	if err := s.save(ctx, state); err != nil {
		return domain.AnswerResult{}, err
	}
	return domain.AnswerResult{
		Index:    index,
		Selected: selected,
		Answer:   question.Answer,
		Correct:  correct,
		Score:    state.Score,
		Finished: state.CurrentQuestion >= len(state.Quiz),
	}, nil
}

// Summary returns the analysis together with the quiz as answered so far.
func (s *QuizService) Summary(ctx context.Context, sessionID string) (domain.QuizSummary, error) {
	state, err := s.analyzed(ctx, sessionID)
	if err != nil {
		return domain.QuizSummary{}, err
	}
	return domain.QuizSummary{
		Result: *state.Result,
		Quiz:   state.Quiz,
		Score:  state.Score,
		Total:  len(state.Quiz),
		Streak: state.Streak,
	}, nil
}

// Forget drops all state kept for the session.
func (s *QuizService) Forget(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *QuizService) loadOrCreate(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		now := s.now()
		return &domain.SessionState{ID: sessionID, Quiz: []domain.QuizQuestion{}, CreatedAt: now, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return state, nil
}

func (s *QuizService) analyzed(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, domain.ErrNoAnalysis
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if state.Result == nil {
		return nil, domain.ErrNoAnalysis
	}
	return state, nil
}

func (s *QuizService) save(ctx context.Context, state *domain.SessionState) error {
	state.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, state); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func quizOpen(state *domain.SessionState) error {
	if len(state.Quiz) == 0 {
		return domain.ErrNoQuiz
	}
	if state.CurrentQuestion >= len(state.Quiz) {
		return domain.ErrQuizFinished
	}
	return nil
}

func questionView(state *domain.SessionState) domain.QuestionView {
	q := state.Quiz[state.CurrentQuestion]
	return domain.QuestionView{
		Index:    state.CurrentQuestion,
		Total:    len(state.Quiz),
		Question: q.Question,
		Options:  append([]string(nil), q.Options...),
		Score:    state.Score,
		Streak:   state.Streak,
	}
}

// nextStreak applies the daily streak rules: a visit the day after the last one
// extends the streak, a longer gap restarts it, and repeat visits leave it alone.
func nextStreak(streak int, lastVisit string, now time.Time) int {
	if lastVisit == "" {
		return 1
	}
	last, err := time.ParseInLocation(dateLayout, lastVisit, now.Location())
	if err != nil {
		return 1
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	switch {
	case last.Equal(yesterday):
		return streak + 1
	case last.Before(yesterday):
		return 1
	default:
		return streak
	}
}
