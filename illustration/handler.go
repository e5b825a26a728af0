package illustration

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/gallery/errors"
	"github.com/kbukum/gallery/logger"
	"github.com/kbukum/gallery/observability"
	"github.com/kbukum/gallery/server/middleware"
)

const (
	routeList = "/api/illustrations"
	routeItem = "/api/illustrations/:id"
)

// Handler serves the listing API.
type Handler struct {
	svc     *Service
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewHandler creates a handler. metrics may be nil.
func NewHandler(svc *Service, log *logger.Logger, metrics *observability.Metrics) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{svc: svc, log: log.WithComponent("illustration.handler"), metrics: metrics}
}

// Register mounts the API on r. CORS applies to every route; the shared
// secret guards only the GET routes.
func (h *Handler) Register(r gin.IRouter, auth middleware.APIKeyConfig, cors middleware.CORSConfig) {
	api := r.Group("", middleware.CORS(cors))
	guard := middleware.APIKey(auth)

	api.GET(routeList, h.observe(routeList), guard, h.list)
	api.GET(routeItem, h.observe(routeItem), guard, h.get)
	api.OPTIONS(routeList, h.options)
	api.HEAD(routeList, h.head)
}

func (h *Handler) list(c *gin.Context) {
	q, err := ParseQuery(c.Query("page"), c.Query("limit"), c.Query("sortBy"), c.Query("sortDirection"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errorMessage(err)})
		return
	}

	page, err := h.svc.Page(c.Request.Context(), q)
	if err != nil {
		h.log.WithContext(c.Request.Context()).Error("listing failed", logger.Fields(logger.FieldPage, q.Page, logger.FieldError, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	it, err := h.svc.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, it)
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "illustration not found"})
	default:
		h.log.WithContext(c.Request.Context()).Error("illustration lookup failed", logger.Fields(logger.FieldIllustrationID, id, logger.FieldError, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorMessage(err)})
	}
}

func (h *Handler) options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "GET, HEAD"})
}

func (h *Handler) head(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "HEAD request received"})
}

// observe counts the final status of a listing route, including 401s
// written by the key check.
func (h *Handler) observe(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		h.metrics.ObserveListingRequest(route, c.Writer.Status())
	}
}

func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
