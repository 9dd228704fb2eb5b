package domain

import "errors"

var (
	// ErrSessionNotFound is returned when no state exists for a session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoAnalysis indicates the session has not analyzed any text yet.
	ErrNoAnalysis = errors.New("no analysis in session")
	// ErrNoQuiz indicates the current analysis came back without quiz questions.
	ErrNoQuiz = errors.New("analysis has no quiz")
	// ErrQuizFinished is returned when every question has already been answered.
	ErrQuizFinished = errors.New("quiz already finished")
	// ErrEmptyText rejects analysis requests without news text.
	ErrEmptyText = errors.New("news text is empty")
)
