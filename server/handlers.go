package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/pkg/pipeline"
)

type generateRequest struct {
	Query string `json:"query"`
}

type importRequest struct {
	URL      string `json:"url"`
	Category string `json:"category"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"endpoints": gin.H{
			"health":          "GET /health",
			"generate":        "POST /generate",
			"documents":       "GET /documents",
			"document":        "GET /documents/:id",
			"create_document": "POST /documents",
			"import_document": "POST /documents/import",
			"queries":         "GET /queries",
			"websocket":       "GET /ws",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		s.fail(c, http.StatusBadRequest, "Query is required", nil)
		return
	}

	result, err := s.pipeline.ProcessQuery(c.Request.Context(), req.Query)
	if err != nil {
		s.respondError(c, err, "Failed to process query")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListDocuments(c *gin.Context) {
	docs, err := s.pipeline.Documents(c.Request.Context())
	if err != nil {
		s.respondError(c, err, "Failed to fetch documents")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": docs})
}

func (s *Server) handleGetDocument(c *gin.Context) {
	doc, err := s.pipeline.Document(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err, "Failed to fetch document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}

func (s *Server) handleCreateDocument(c *gin.Context) {
	var input models.DocumentInput
	if err := c.ShouldBindJSON(&input); err != nil ||
		strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		s.fail(c, http.StatusBadRequest, "Title and content are required", nil)
		return
	}

	doc, err := s.pipeline.CreateDocument(c.Request.Context(), input)
	if err != nil {
		s.respondError(c, err, "Failed to create document")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    doc,
		"message": "Document created successfully",
	})
}

func (s *Server) handleImportDocument(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		s.fail(c, http.StatusBadRequest, "URL is required", nil)
		return
	}

	doc, err := s.pipeline.ImportDocument(c.Request.Context(), req.URL, req.Category)
	if err != nil {
		s.respondError(c, err, "Failed to import document")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    doc,
		"message": "Document imported successfully",
	})
}

func (s *Server) handleQueryHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.fail(c, http.StatusBadRequest, "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}

	logs, err := s.pipeline.QueryHistory(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err, "Failed to fetch query history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": logs})
}

// respondError maps pipeline errors onto HTTP statuses. message is used for
// failures the caller cannot fix.
func (s *Server) respondError(c *gin.Context, err error, message string) {
	var validation models.ValidationError
	switch {
	case errors.As(err, &validation):
		s.fail(c, http.StatusBadRequest, validation.Message, nil)
	case errors.Is(err, models.ErrNotFound):
		s.fail(c, http.StatusNotFound, "Document not found", nil)
	case errors.Is(err, pipeline.ErrImportDisabled):
		s.fail(c, http.StatusNotImplemented, "Document import is not enabled", nil)
	case errors.Is(err, pipeline.ErrFetch):
		s.fail(c, http.StatusBadGateway, message, err)
	default:
		s.fail(c, http.StatusInternalServerError, message, err)
	}
}

func (s *Server) fail(c *gin.Context, status int, message string, err error) {
	resp := errorResponse{Success: false, Message: message}
	if err != nil {
		resp.Detail = err.Error()
		s.logger.Error(message, "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, resp)
}
