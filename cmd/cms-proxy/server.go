package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Sternrassler/strapi-client/pkg/content"
	"github.com/Sternrassler/strapi-client/pkg/datamanager"
	"github.com/Sternrassler/strapi-client/pkg/metrics"
	"github.com/Sternrassler/strapi-client/pkg/pagination"
	"github.com/Sternrassler/strapi-client/pkg/strapi"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// pinger is satisfied by cache.RedisStore.
type pinger interface {
	Ping(ctx context.Context) error
}

type server struct {
	client *strapi.Client
	data   *datamanager.Manager
	ready  pinger // nil for the in-memory cache
	pages  pagination.Config
	logger zerolog.Logger
}

// homePage bundles the content of the landing page below the shared header
// and hero.
type homePage struct {
	Services     []content.Entity[content.Service]     `json:"services"`
	SectionInfo  *content.Entity[content.SectionInfo]  `json:"sectionInfo"`
	Testimonials []content.Entity[content.Testimonial] `json:"testimonials"`
	Steps        []content.Entity[content.Step]        `json:"steps"`
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/health", s.health)
	r.GET("/ready", s.readiness)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/shared", s.shared)
		api.GET("/header", s.header)
		api.GET("/hero", s.hero)
		api.GET("/pages/home", s.homePage)

		api.GET("/articles", s.articles)
		api.GET("/articles/:slug", s.articleBySlug)
		api.GET("/projects", s.projects)
		api.GET("/projects/featured", s.featuredProjects)
		api.GET("/services", s.services)

		api.POST("/cache/clear", s.clearCache)
		api.GET("/cache/stats", s.cacheStats)
	}

	return r
}

// requestID propagates or assigns X-Request-ID.
func (s *server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Str("request_id", c.GetString("request_id")).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}

func (s *server) health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *server) readiness(c *gin.Context) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready.Ping(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Readiness check failed")
			c.String(http.StatusServiceUnavailable, "Redis unavailable")
			return
		}
	}
	c.String(http.StatusOK, "OK")
}

func (s *server) shared(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.GetSharedData(c.Request.Context()))
}

func (s *server) header(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.data.GetHeader(c.Request.Context())})
}

func (s *server) hero(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.data.GetHero(c.Request.Context())})
}

func (s *server) homePage(c *gin.Context) {
	page, ok := datamanager.GetPageData(c.Request.Context(), s.data, "home", s.fetchHomePage)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page})
}

// fetchHomePage runs the four home page lookups concurrently. Any failure
// fails the whole page.
func (s *server) fetchHomePage(ctx context.Context) (*homePage, error) {
	var (
		page homePage
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	run(func() error {
		resp, err := s.client.ServicesLimited(ctx, strapi.DefaultServicesLimit)
		if err == nil {
			page.Services = resp.Data
		}
		return err
	})
	run(func() error {
		info, err := s.client.ActiveSectionInfo(ctx)
		page.SectionInfo = info
		return err
	})
	run(func() error {
		resp, err := s.client.Testimonials(ctx, true)
		if err == nil {
			page.Testimonials = resp.Data
		}
		return err
	})
	run(func() error {
		resp, err := s.client.ActiveSteps(ctx)
		if err == nil {
			page.Steps = resp.Data
		}
		return err
	})
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *server) articles(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.Query("all") == "true" {
		opts.Sort = []string{"createdAt:desc"}
		all, err := strapi.FindAll[content.Article](c.Request.Context(), s.client, strapi.EndpointArticles, opts, s.pages)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": all})
		return
	}

	resp, err := s.client.Articles(c.Request.Context(), opts)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) articleBySlug(c *gin.Context) {
	resp, err := s.client.ArticleBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if len(resp.Data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp.Data[0]})
}

func (s *server) projects(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := s.client.Projects(c.Request.Context(), opts)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) featuredProjects(c *gin.Context) {
	resp, err := s.client.FeaturedProjects(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) services(c *gin.Context) {
	var (
		resp *content.ServicesResponse
		err  error
	)
	if c.Query("active") == "true" {
		resp, err = s.client.ActiveServices(c.Request.Context())
	} else {
		resp, err = s.client.Services(c.Request.Context(), strapi.Options{})
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *server) clearCache(c *gin.Context) {
	if err := s.data.ClearCache(c.Request.Context()); err != nil {
		s.logger.Error().Err(err).Msg("Cache clear failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

func (s *server) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.Stats())
}

// listOptions reads ?page= and ?pageSize=.
func listOptions(c *gin.Context) (strapi.Options, error) {
	var opts strapi.Options
	page, err := queryInt(c, "page")
	if err != nil {
		return opts, err
	}
	size, err := queryInt(c, "pageSize")
	if err != nil {
		return opts, err
	}
	if page > 0 || size > 0 {
		opts.Pagination = &strapi.PageRequest{Page: page, PageSize: size}
	}
	return opts, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return n, nil
}

// writeError maps CMS failures onto proxy responses: 404 stays 404, any
// other CMS or transport failure becomes 502.
func (s *server) writeError(c *gin.Context, err error) {
	s.logger.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("request_id", c.GetString("request_id")).
		Msg("CMS request failed")

	if strapi.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
