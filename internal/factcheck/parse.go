package factcheck

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"factcheck-quiz-service/internal/domain"
)

const (
	fenceOpen  = "```json"
	fenceClose = "```"

	noExplanation = "No explanation available"
	quizOptions   = 3
)

// ParseResult turns raw model text into a ClassificationResult. It never fails:
// a ```json fenced block is tried first, then the whole text, and if neither decodes
// to a JSON object the raw text is returned as the explanation of an Unknown verdict.
func ParseResult(raw string) domain.ClassificationResult {
	if fenced, ok := findFence(raw); ok {
		res, err := decodeResult(fenced, raw)
		if err == nil {
			return res
		}
		log.Printf("fenced block not usable: %v", err)
	}
	res, err := decodeResult(strings.TrimSpace(raw), raw)
	if err == nil {
		return res
	}
	return fallbackResult(raw)
}

// findFence returns the text between the first ```json marker and the closing ```
// that follows it. Absence of either marker means there is no fence.
func findFence(raw string) (string, bool) {
	start := strings.Index(raw, fenceOpen)
	if start < 0 {
		return "", false
	}
	body := raw[start+len(fenceOpen):]
	end := strings.Index(body, fenceClose)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(body[:end]), true
}

// decodeResult decodes payload leniently: missing or ill-typed optional fields take
// their defaults instead of rejecting the whole object.
func decodeResult(payload, raw string) (domain.ClassificationResult, error) {
	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return domain.ClassificationResult{}, &parseError{stage: "decode", err: err}
	}
	obj := Root(v).Object()
	if reason := obj.Absent(); reason != nil {
		return domain.ClassificationResult{}, &parseError{stage: "shape", err: reason}
	}

	res := domain.ClassificationResult{
		Label:       domain.LabelUnknown,
		Explanation: raw,
		Quiz:        []domain.QuizQuestion{},
	}
	if label, ok := obj.Field("label").Str().Text(); ok {
		res.Label = domain.NormalizeLabel(label)
	}
	if c := obj.Field("confidence"); c.Absent() == nil {
		res.Confidence = confidenceOf(c.Value())
	}
	if source, ok := obj.Field("source").Str().Text(); ok {
		res.Source = source
	}
	if explanation, ok := obj.Field("explanation").NonEmpty().Text(); ok {
		res.Explanation = explanation
	}
	if quiz := obj.Field("quiz").List(); quiz.Absent() == nil {
		res.Quiz = decodeQuiz(quiz.Value().([]any))
	}
	return res, nil
}

func fallbackResult(raw string) domain.ClassificationResult {
	explanation := raw
	if explanation == "" {
		explanation = noExplanation
	}
	return domain.ClassificationResult{
		Label:       domain.LabelUnknown,
		Confidence:  0,
		Source:      "",
		Explanation: explanation,
		Quiz:        []domain.QuizQuestion{},
	}
}

// confidenceOf accepts numbers and numeric strings and clamps them to [0, 1].
func confidenceOf(v any) float64 {
	var f float64
	switch c := v.(type) {
	case float64:
		f = c
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// decodeQuiz keeps well-formed questions in order and drops the rest.
func decodeQuiz(items []any) []domain.QuizQuestion {
	quiz := make([]domain.QuizQuestion, 0, len(items))
	for i, item := range items {
		q, err := decodeQuestion(Root(item))
		if err != nil {
			log.Printf("dropping quiz entry %d: %v", i, err)
			continue
		}
		quiz = append(quiz, q)
	}
	return quiz
}

func decodeQuestion(n Node) (domain.QuizQuestion, error) {
	question, ok := n.Object().Field("question").NonEmpty().Text()
	if !ok {
		return domain.QuizQuestion{}, fmt.Errorf("no question text")
	}
	answer, ok := n.Field("answer").Str().Text()
	if !ok {
		return domain.QuizQuestion{}, fmt.Errorf("no answer")
	}
	opts := n.Field("options").List()
	if reason := opts.Absent(); reason != nil {
		return domain.QuizQuestion{}, reason
	}
	raw := opts.Value().([]any)
	if len(raw) != quizOptions {
		return domain.QuizQuestion{}, fmt.Errorf("expected %d options, got %d", quizOptions, len(raw))
	}
	options := make([]string, 0, quizOptions)
	for i := range raw {
		opt, ok := opts.Index(i).Str().Text()
		if !ok {
			return domain.QuizQuestion{}, fmt.Errorf("option %d is not a string", i)
		}
		options = append(options, opt)
	}
	return domain.QuizQuestion{Question: question, Options: options, Answer: answer}, nil
}
