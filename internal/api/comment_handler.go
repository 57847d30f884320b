package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/comment-pr/internal/config"
	"github.com/comment-pr/internal/models"
	"github.com/comment-pr/internal/service"
	"github.com/comment-pr/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	fieldCommentSite = "comment-site"
	fieldRedirect    = "redirect"

	pullRequestURLHeader = "X-Pull-Request-URL"

	wrongSiteMessage = "Please make sure you post this to your own comments receiver."
)

// CommentHandler handles blog comment form posts
type CommentHandler struct {
	services    *service.Services
	maxFormSize int64
	websiteHost string
	log         zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services:    services,
		maxFormSize: cfg.Server.MaxFormSize,
		websiteHost: cfg.WebsiteHost(),
		log:         log.With().Str("handler", "comment").Logger(),
	}
}

// CreateComment handles POST / and POST /comments.
// Accepts url-encoded or multipart form data and proposes the comment as a pull request.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	log := h.log.With().Str("request_id", c.GetString(requestIDKey)).Logger()

	form, err := h.parseForm(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, "Form submission too large")
			return
		}
		log.Debug().Err(err).Msg("Unreadable form submission")
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	if !h.fromOwnSite(form) {
		log.Warn().Str("comment_site", form.Get(fieldCommentSite)).Msg("Comment posted from another site")
		c.String(http.StatusBadRequest, wrongSiteMessage)
		return
	}

	comment, errs := validation.BindComment(form)
	if len(errs) > 0 {
		log.Debug().Strs("errors", errs).Msg("Comment rejected")
		c.String(http.StatusBadRequest, strings.Join(errs, "\n"))
		return
	}

	pr, err := h.services.Comment.CreatePullRequest(c.Request.Context(), comment)
	if err != nil {
		log.Error().
			Err(err).
			Str("comment_id", comment.ID()).
			Str("post_id", comment.PostID()).
			Str("branch", comment.BranchName()).
			Msg("Failed to create pull request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create pull request"})
		return
	}

	log.Info().
		Str("comment_id", comment.ID()).
		Str("post_id", comment.PostID()).
		Str("pull_request", pr.URL).
		Msg("Blog comment posted")

	if redirect, ok := h.redirectTarget(form); ok {
		c.Header(pullRequestURLHeader, pr.URL)
		c.Redirect(http.StatusSeeOther, redirect)
		return
	}

	c.Header("Location", pr.URL)
	c.JSON(http.StatusCreated, pr)
}

// parseForm reads the posted fields from either supported encoding
func (h *CommentHandler) parseForm(c *gin.Context) (url.Values, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFormSize)

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(h.maxFormSize); err != nil {
			return nil, err
		}
		return c.Request.PostForm, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}

// fromOwnSite checks the comment-site field when a website is configured
func (h *CommentHandler) fromOwnSite(form url.Values) bool {
	if h.websiteHost == "" {
		return true
	}
	site, ok := models.ParseAbsoluteURL(form.Get(fieldCommentSite))
	return ok && strings.EqualFold(site.Hostname(), h.websiteHost)
}

// redirectTarget returns the http(s) URL to send the browser back to.
// With a website configured, only that host is accepted.
func (h *CommentHandler) redirectTarget(form url.Values) (string, bool) {
	u, ok := models.ParseAbsoluteURL(strings.TrimSpace(form.Get(fieldRedirect)))
	if !ok || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	if h.websiteHost != "" && !strings.EqualFold(u.Hostname(), h.websiteHost) {
		return "", false
	}
	return u.String(), true
}
