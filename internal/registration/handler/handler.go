// Package handler renders the registration pages.
package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"ecoleta/internal/registration/domain"
	"ecoleta/internal/registration/service"
	"ecoleta/platform/apperr"
	"ecoleta/platform/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	flashCookie   = "ecoleta_flash"
	flashCreated  = "created"
	flashMaxAge   = 60
	pageTemplate  = "create_point.html"
	homeTemplate  = "home.html"
	citiesOptions = "city_options"
)

// Options configures the map on the create-point page.
type Options struct {
	TileURL string
	// DefaultCenter is used when the browser reports no position.
	DefaultCenter domain.Position
}

// Handler serves the home view and the create-point page.
type Handler struct {
	svc     *service.Service
	pages   *template.Template
	tileURL string
	center  domain.Position
}

// New parses the embedded templates.
func New(svc *service.Service, opts Options) (*Handler, error) {
	pages, err := template.New("pages").Funcs(template.FuncMap{
		"coord":           formatCoord,
		"placeholderUF":   func() string { return placeholderUF },
		"placeholderCity": func() string { return placeholderCity },
		"unselected":      func() string { return domain.Unselected },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, pages: pages, tileURL: opts.TileURL, center: opts.DefaultCenter}, nil
}

// Home renders the landing view and consumes the confirmation flash.
// GET /
func (h *Handler) Home(c *gin.Context) {
	var view homeView
	if flash, err := c.Cookie(flashCookie); err == nil && flash == flashCreated {
		view.Flash = createdMessage
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	h.render(c, http.StatusOK, homeTemplate, view)
}

// CreatePointForm renders the page. Query values rebuild the form, so a
// UF change submitted without the page script re-renders with the new cities.
// GET /create-point
func (h *Handler) CreatePointForm(c *gin.Context) {
	values := c.Request.URL.Query()
	center, hinted := centerFromHints(values, h.center)

	form := domain.PartialFormFromValues(values, center)

	page := h.svc.LoadPage(c.Request.Context(), form)
	h.render(c, http.StatusOK, pageTemplate, buildPageView(form, page, h.tileURL, hinted))
}

// Cities renders the city <option> list for a UF.
// GET /create-point/cities?uf=SP
func (h *Handler) Cities(c *gin.Context) {
	cities, err := h.svc.Cities(c.Request.Context(), c.Query("uf"))
	if err != nil {
		status := http.StatusBadGateway
		if apperr.Is(err, apperr.KindValidation) {
			status = http.StatusBadRequest
		}
		h.render(c, status, citiesOptions, citiesView{})
		return
	}
	h.render(c, http.StatusOK, citiesOptions, citiesView{Cities: options(cities, "")})
}

// Submit sends the form in one create call and redirects home on success.
// POST /create-point
func (h *Handler) Submit(c *gin.Context) {
	// A body that fails to parse may still have filled PostForm partially.
	parseErr := c.Request.ParseForm()
	values := c.Request.PostForm
	center, hinted := centerFromHints(values, h.center)
	if parseErr != nil {
		h.renderInvalid(c, domain.PartialFormFromValues(values, center), hinted)
		return
	}

	form, err := domain.FormFromValues(values, center)
	if err != nil {
		h.renderInvalid(c, domain.PartialFormFromValues(values, center), hinted)
		return
	}

	if _, err := h.svc.Submit(c.Request.Context(), form); err != nil {
		banner, fields := submitErrors(err)
		status := http.StatusInternalServerError
		if appErr, ok := apperr.As(err); ok {
			status = appErr.HTTPStatus()
		}
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}

		view := buildPageView(form, h.svc.LoadPage(c.Request.Context(), form), h.tileURL, hinted)
		view.Errors = append([]string{banner}, view.Errors...)
		view.FieldErrors = fields
		h.render(c, status, pageTemplate, view)
		return
	}

	c.SetCookie(flashCookie, flashCreated, flashMaxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// SubmitLimiter decides whether a client may submit the form again.
type SubmitLimiter interface {
	Allow(ip string) bool
}

// SubmitGuard runs ahead of Submit. A refused client gets the page back with
// what it typed, a banner and status 429.
func (h *Handler) SubmitGuard(limiter SubmitLimiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter.Allow(ip) {
			c.Next()
			return
		}
		if log != nil {
			log.RateLimitExceeded(ip, c.Request.URL.Path)
		}

		_ = c.Request.ParseForm()
		values := c.Request.PostForm
		center, hinted := centerFromHints(values, h.center)
		c.Abort()
		h.renderBanner(c, http.StatusTooManyRequests, msgTooManyAttempts, domain.PartialFormFromValues(values, center), hinted)
	}
}

func (h *Handler) renderInvalid(c *gin.Context, form *domain.Form, hinted bool) {
	h.renderBanner(c, http.StatusBadRequest, msgInvalidForm, form, hinted)
}

func (h *Handler) renderBanner(c *gin.Context, status int, banner string, form *domain.Form, hinted bool) {
	view := buildPageView(form, h.svc.LoadPage(c.Request.Context(), form), h.tileURL, hinted)
	view.Errors = append([]string{banner}, view.Errors...)
	h.render(c, status, pageTemplate, view)
}

func (h *Handler) render(c *gin.Context, status int, name string, data interface{}) {
	c.Render(status, render.HTML{Template: h.pages, Name: name, Data: data})
}
