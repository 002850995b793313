package rest

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validation errors report json/form/uri names
// instead of Go field names.
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(s.recovery())
	r.Use(requestID())
	r.Use(s.requestLogger())
	if s.opts.Metrics != nil {
		r.Use(s.observe())
	}
	r.Use(cors())

	api := r.Group(s.opts.APIPrefix)
	{
		users := api.Group("/users")
		users.POST("", s.createAccount)
		users.POST("/", s.createAccount)
		users.GET("", s.listAccounts)
		users.GET("/", s.listAccounts)
		users.POST("/:id/lock", s.lockAccount)
		users.POST("/:id/unlock", s.unlockAccount)
	}

	r.GET("/health", s.health)
	r.GET("/ready", s.ready)
	if s.opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	return r
}
