package http

import (
	"errors"
	"log"
	"net/http"

	"factcheck-quiz-service/internal/app"
	"factcheck-quiz-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const emptyTextMessage = "Please enter news text"

// PageHandler renders the HTML flow: submit text, read the analysis, take the quiz.
type PageHandler struct {
	service *app.QuizService
}

func NewPageHandler(service *app.QuizService) *PageHandler {
	return &PageHandler{service: service}
}

// Index shows the submission form and counts the visit towards the streak.
func (h *PageHandler) Index(c *gin.Context) {
	state, err := h.service.Visit(c.Request.Context(), sessionID(c))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.tmpl", gin.H{"Streak": state.Streak})
}

// Submit analyzes the posted news text and moves on to the analysis page.
func (h *PageHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	id := sessionID(c)

	state, err := h.service.Visit(ctx, id)
	if err != nil {
		h.internalError(c, err)
		return
	}

	text := stripMarkup(c.PostForm("news_text"))
	if _, err := h.service.Analyze(ctx, id, text); err != nil {
		if errors.Is(err, domain.ErrEmptyText) {
			c.HTML(http.StatusOK, "index.tmpl", gin.H{"Streak": state.Streak, "Error": emptyTextMessage})
			return
		}
		h.internalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/analysis")
}

func (h *PageHandler) Analysis(c *gin.Context) {
	result, err := h.service.Analysis(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "analysis.tmpl", gin.H{"Result": result})
}

func (h *PageHandler) Quiz(c *gin.Context) {
	view, err := h.service.CurrentQuestion(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "quiz.tmpl", gin.H{"Question": view})
}

// Answer records the chosen option and shows the next question or the final result.
func (h *PageHandler) Answer(c *gin.Context) {
	res, err := h.service.Answer(c.Request.Context(), sessionID(c), c.PostForm("option"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Finished {
		c.Redirect(http.StatusFound, "/result")
		return
	}
	c.Redirect(http.StatusFound, "/quiz")
}

func (h *PageHandler) Result(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "result.tmpl", gin.H{"Summary": summary})
}

// fail maps quiz-flow errors onto redirects; anything else is a server error.
func (h *PageHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoAnalysis), errors.Is(err, domain.ErrNoQuiz):
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, domain.ErrQuizFinished):
		c.Redirect(http.StatusFound, "/result")
	default:
		h.internalError(c, err)
	}
}

func (h *PageHandler) internalError(c *gin.Context, err error) {
	log.Printf("page %s failed: %v", c.FullPath(), err)
	c.String(http.StatusInternalServerError, "something went wrong, please try again")
}
