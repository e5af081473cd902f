// Package fixture serves a canned search backend for local runs and tests.
package fixture

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Server answers GET /search with a fixed status and body.
type Server struct {
	body   []byte
	status int
	log    zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger logs every request.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer returns a gin engine serving body with the given status for every
// non-blank query. A zero status means 200.
func NewServer(body []byte, status int, opts ...Option) *gin.Engine {
	if status == 0 {
		status = http.StatusOK
	}
	s := &Server{body: body, status: status, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())
	r.Use(corsConfig())
	r.GET("/search", s.search)
	return r
}

// LoadFile reads a fixture body from disk.
func LoadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read fixture")
	}
	return b, nil
}

// corsConfig lets a browser front end on another origin call the fixture.
func corsConfig() gin.HandlerFunc {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Accept", "Content-Type"}
	c.MaxAge = 12 * time.Hour
	return cors.New(c)
}

func (s *Server) search(c *gin.Context) {
	if strings.TrimSpace(c.Query("query")) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	c.Data(s.status, "application/json", s.body)
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Query("query")).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("fixture request")
	}
}
