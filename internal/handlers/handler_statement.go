package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jpkgen/jpk_wb_app/internal/apperrors"
	portssvc "github.com/jpkgen/jpk_wb_app/internal/core/ports/services"
	"github.com/jpkgen/jpk_wb_app/internal/core/services"
	"github.com/jpkgen/jpk_wb_app/internal/dto"
	"github.com/jpkgen/jpk_wb_app/internal/middleware"
)

type statementHandler struct {
	ingestionService portssvc.IngestionSvcFacade
	exportService    portssvc.ExportSvcFacade
	tempDir          string
}

func registerStatementRoutes(rg *gin.RouterGroup, ingestionSvc portssvc.IngestionSvcFacade, exportSvc portssvc.ExportSvcFacade, tempDir string, uploadLimiter gin.HandlerFunc) {
	h := &statementHandler{
		ingestionService: ingestionSvc,
		exportService:    exportSvc,
		tempDir:          tempDir,
	}

	statements := rg.Group("/statements")
	{
		statements.POST("", uploadLimiter, h.ingestStatement)
		statements.GET("/:headerID/xml", h.downloadXML)
		statements.GET("/:headerID/validation-errors", h.listValidationErrors)
	}
}

// ingestStatement accepts one header file and one or more position files as
// multipart form fields, stages them under the temp upload directory and
// runs the import pipeline.
func (h *statementHandler) ingestStatement(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
		return
	}
	headerFiles := form.File["headerFile"]
	positionFiles := form.File["positionFiles"]
	if len(headerFiles) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one headerFile is required"})
		return
	}
	if len(positionFiles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one positionFiles entry is required"})
		return
	}

	if err := os.MkdirAll(h.tempDir, 0o755); err != nil {
		logger.Error("could not create temp upload directory", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage uploaded files"})
		return
	}

	headerPath, err := h.stageUpload(c, headerFiles[0])
	if err != nil {
		logger.Error("could not stage header file", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage uploaded files"})
		return
	}
	positionPaths := make([]string, 0, len(positionFiles))
	for _, file := range positionFiles {
		path, err := h.stageUpload(c, file)
		if err != nil {
			logger.Error("could not stage position file", slog.Any("error", err))
			removeAll(append(positionPaths, headerPath))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage uploaded files"})
			return
		}
		positionPaths = append(positionPaths, path)
	}

	result, err := h.ingestionService.IngestStatement(ctx, headerPath, positionPaths)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrHeaderIngestion),
			errors.Is(err, services.ErrNoTransactions),
			errors.Is(err, apperrors.ErrUnsupportedFormat),
			errors.Is(err, apperrors.ErrEmptyInput):
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, dto.IngestStatementResponse{
			HeaderID:   result.HeaderID,
			ErrorCount: result.ErrorCount,
			Message:    err.Error(),
		})
		return
	}

	message := "statement processed and validated successfully"
	switch {
	case result.ErrorCount < 0:
		message = "statement processed but validation could not be completed"
	case result.ErrorCount > 0:
		message = fmt.Sprintf("statement processed with %d validation errors", result.ErrorCount)
	}
	c.JSON(http.StatusOK, dto.IngestStatementResponse{
		HeaderID:   result.HeaderID,
		ErrorCount: result.ErrorCount,
		Message:    message,
	})
}

// downloadXML exports the generated document as a file attachment.
func (h *statementHandler) downloadXML(c *gin.Context) {
	headerID, err := strconv.ParseInt(c.Param("headerID"), 10, 64)
	if err != nil || headerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "headerID must be a positive integer"})
		return
	}

	doc, err := h.exportService.ExportStatement(c.Request.Context(), headerID)
	if err != nil {
		var schemaErr *services.SchemaValidationError
		switch {
		case errors.As(err, &schemaErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      schemaErr.Error(),
				"violations": dto.ToSchemaViolationResponses(schemaErr.Violations),
			})
		case errors.Is(err, services.ErrValidationNotClean):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrGenerationFailed), errors.Is(err, services.ErrMalformedDocument):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "statement not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export statement"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, doc.MediaType, doc.Content)
}

// listValidationErrors returns the engine findings recorded for a statement.
func (h *statementHandler) listValidationErrors(c *gin.Context) {
	headerID, err := strconv.ParseInt(c.Param("headerID"), 10, 64)
	if err != nil || headerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "headerID must be a positive integer"})
		return
	}

	findings, err := h.ingestionService.ListValidationErrors(c.Request.Context(), headerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "statement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list validation errors"})
		return
	}
	c.JSON(http.StatusOK, dto.ToValidationErrorResponses(findings))
}

// stageUpload writes one uploaded file under the temp directory with a
// unique name so concurrent uploads of same-named files cannot collide.
func (h *statementHandler) stageUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + "_" + filepath.Base(file.Filename)
	path := filepath.Join(h.tempDir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func removeAll(paths []string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}
