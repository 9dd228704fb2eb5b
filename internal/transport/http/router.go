package http

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"factcheck-quiz-service/internal/app"
	"factcheck-quiz-service/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// RouterConfig carries the transport settings taken from the service config.
type RouterConfig struct {
	Sessions     *SessionManager
	AllowOrigins []string
	// Logging enables gin's request logger; tests leave it off.
	Logging bool
}

// NewRouter wires the HTML pages, the JSON API and the quiz WebSocket onto a gin engine.
func NewRouter(service *app.QuizService, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Logging {
		router.Use(gin.Logger())
	}
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAll(origins),
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := NewAPIHandler(service)
	router.POST("/analyze", api.Analyze)

	pages := NewPageHandler(service)
	ws := NewWSHandler(service)

	web := router.Group("/")
	web.Use(cfg.Sessions.Middleware())
	{
		web.GET("/", pages.Index)
		web.POST("/", pages.Submit)
		web.GET("/analysis", pages.Analysis)
		web.GET("/quiz", pages.Quiz)
		web.POST("/quiz", pages.Answer)
		web.GET("/result", pages.Result)
		web.GET("/ws", ws.ServeWS)
	}
	return router
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"percent": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
	"selected": func(q domain.QuizQuestion) string {
		if q.Selected == nil {
			return ""
		}
		return *q.Selected
	},
	"answered": func(q domain.QuizQuestion) bool { return q.Selected != nil },
	"correct":  func(q domain.QuizQuestion) bool { return q.IsCorrect != nil && *q.IsCorrect },
}
