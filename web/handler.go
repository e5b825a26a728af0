package web

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/gallery/errors"
	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/observability"
	"github.com/kbukum/gallery/server"
	"github.com/kbukum/gallery/storage"
)

// Finder loads one illustration by id.
type Finder interface {
	Get(ctx context.Context, id string) (*gallery.Illustration, error)
}

// Deps are the collaborators the site renders from.
type Deps struct {
	Lister   gallery.Lister
	Finder   Finder
	Resolver *gallery.Resolver
	Detail   *gallery.DetailResolver
	Store    storage.Storage
	Gallery  gallery.Config
	Site     Site
	Logger   *logger.Logger
	Metrics  *observability.Metrics
	// Now defaults to time.Now.
	Now func() time.Time
}

// Handler serves the public pages.
type Handler struct {
	deps Deps
	tmpl *renderer
	log  *logger.Logger
}

// NewHandler parses the embedded templates.
func NewHandler(deps Deps) (*Handler, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	deps.Gallery.ApplyDefaults()
	deps.Site.ApplyDefaults()
	if deps.Now == nil {
		deps.Now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	tmpl, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{deps: deps, tmpl: tmpl, log: log.WithComponent("web")}, nil
}

// Register mounts the site on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.galleryPage)
	r.GET("/gallery/page", h.galleryFragment)
	r.GET("/illustrations/:id", h.detail)
	r.GET("/illustrations/:id/download", h.download)
	r.GET("/about", h.about)
	r.GET("/sitemap.xml", h.sitemap)
	r.StaticFS("/assets", http.FS(Static()))
}

type pageData struct {
	Site     Site
	Path     string
	Debounce int64
}

func (h *Handler) base(c *gin.Context) pageData {
	return pageData{Site: h.deps.Site, Path: c.Request.URL.Path, Debounce: h.deps.Gallery.Debounce.Milliseconds()}
}

func (h *Handler) newView() *gallery.View {
	return gallery.NewView(h.deps.Lister, h.deps.Resolver, h.deps.Gallery,
		gallery.WithLogger(h.log), gallery.WithMetrics(h.deps.Metrics))
}

func (h *Handler) galleryPage(c *gin.Context) {
	model := h.newView().Load(c.Request.Context())
	h.writePage(c, http.StatusOK, "gallery", struct {
		pageData
		Model gallery.Model
	}{h.base(c), model})
}

func (h *Handler) galleryFragment(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		server.RespondWithError(c, apperrors.InvalidInput("page", "must be a positive integer"))
		return
	}

	model := h.newView().LoadPage(c.Request.Context(), page, seenIDs(c.Query("seen"))...)
	status := http.StatusOK
	switch {
	case model.State == gallery.ViewError:
		status = http.StatusBadGateway
	case model.State == gallery.ViewExhausted && page > 1:
		model.Message = gallery.ExhaustedMessage
	}

	body, err := h.tmpl.render("fragment", model)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

// maxSeenIDs bounds how many already-rendered ids one fragment request
// carries. Offsets only drift by the uploads made while a visitor scrolls.
const maxSeenIDs = 200

// seenIDs parses the comma-separated ids the client already shows, keeping
// the most recent ones.
func seenIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for id := range strings.SplitSeq(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) > maxSeenIDs {
		ids = ids[len(ids)-maxSeenIDs:]
	}
	return ids
}

func (h *Handler) detail(c *gin.Context) {
	it, ok := h.find(c)
	if !ok {
		return
	}
	h.writePage(c, http.StatusOK, "detail", struct {
		pageData
		Illustration *gallery.Illustration
		ImageURL     string
	}{h.base(c), it, h.deps.Detail.Resolve(c.Request.Context(), it.FilePath)})
}

func (h *Handler) download(c *gin.Context) {
	it, ok := h.find(c)
	if !ok {
		return
	}
	if it.FilePath == "" {
		h.notFound(c)
		return
	}

	path := h.deps.Gallery.Folder + "/" + h.deps.Resolver.Normalize(it.FilePath)
	body, err := h.deps.Store.Download(c.Request.Context(), path)
	if err != nil {
		appErr := storage.Translate("download", path, err)
		if apperrors.IsNotFound(appErr) {
			h.notFound(c)
			return
		}
		h.log.Error("download failed", logger.Fields(logger.FieldPath, path, logger.FieldError, appErr.Error()))
		server.RespondWithError(c, appErr)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", `attachment; filename="`+downloadName(it.Title)+`"`)
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		h.log.Warn("download interrupted", logger.Fields(logger.FieldPath, path, logger.FieldError, err.Error()))
	}
}

func (h *Handler) about(c *gin.Context) {
	h.writePage(c, http.StatusOK, "about", h.base(c))
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (h *Handler) sitemap(c *gin.Context) {
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{{
			Loc:        h.deps.Site.URL,
			LastMod:    h.deps.Now().UTC().Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   1,
		}},
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

// find loads the :id illustration. Any lookup failure renders the not-found
// page.
func (h *Handler) find(c *gin.Context) (*gallery.Illustration, bool) {
	id := c.Param("id")
	it, err := h.deps.Finder.Get(c.Request.Context(), id)
	if err != nil || it == nil {
		if err != nil && !apperrors.IsNotFound(err) {
			h.log.Warn("illustration lookup failed", logger.Fields(logger.FieldIllustrationID, id, logger.FieldError, err.Error()))
		}
		h.notFound(c)
		return nil, false
	}
	return it, true
}

func (h *Handler) notFound(c *gin.Context) {
	h.writePage(c, http.StatusNotFound, "notfound", h.base(c))
}

func (h *Handler) writePage(c *gin.Context, status int, name string, data any) {
	body, err := h.tmpl.page(name, data)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("render failed", logger.ErrorFields("render", err))
	c.String(http.StatusInternalServerError, "internal error")
}

// downloadName is "<title>.png", or "illustration.png" for an empty title,
// with characters that would break the header removed.
func downloadName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/':
			return -1
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "illustration"
	}
	return name + ".png"
}

// Validate checks that the mandatory collaborators are set.
func (d Deps) Validate() error {
	var errs []error
	if d.Lister == nil {
		errs = append(errs, errors.New("web: lister is required"))
	}
	if d.Finder == nil {
		errs = append(errs, errors.New("web: finder is required"))
	}
	if d.Resolver == nil || d.Detail == nil {
		errs = append(errs, errors.New("web: resolvers are required"))
	}
	if d.Store == nil {
		errs = append(errs, errors.New("web: store is required"))
	}
	return errors.Join(errs...)
}
