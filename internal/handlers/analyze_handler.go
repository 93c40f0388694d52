package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type AnalyzeHandler struct {
	analyzer     services.AnalyzerService
	analysisRepo repositories.AnalysisRepository
	apiKey       string
	maxFileSize  int64
	logger       *zap.Logger
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	analysisRepo repositories.AnalysisRepository,
	apiKey string,
	maxFileSize int64,
	logger *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:     analyzer,
		analysisRepo: analysisRepo,
		apiKey:       apiKey,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

// HandleAnalyze handles POST /analyze.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	if h.apiKey == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Gemini API key not configured. Please set GEMINI_API_KEY environment variable.",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "No file provided",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	kind, ok := detectKind(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid file type. Please upload a PDF or DOCX file.",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to read uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to read uploaded file",
		})
	}

	analysis, err := h.analyzer.AnalyzeResume(c.Context(), data, fileHeader.Filename, kind)
	if err != nil {
		return h.analyzeError(c, err)
	}

	return c.JSON(models.NewAnalysisResponse(analysis))
}

// HandleGetAnalysis handles GET /analyze?id=<id>.
func (h *AnalyzeHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Analysis ID required",
		})
	}

	analysis, err := h.analysisRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "Analysis not found",
		})
	}

	return c.JSON(analysis)
}

// analyzeError maps pipeline failures onto status codes: caller-fixable
// content problems are 400, everything else is 500 with the error text.
func (h *AnalyzeHandler) analyzeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrInsufficientContent) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Could not extract sufficient text from the resume. Please ensure the file is not corrupted.",
		})
	}

	h.logger.Error("resume analysis failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: err.Error(),
	})
}

// detectKind accepts either the declared media type or the file extension,
// whichever recognizes the upload.
func detectKind(contentType, filename string) (services.DocumentKind, bool) {
	name := strings.ToLower(filename)

	switch {
	case contentType == mimePDF || strings.HasSuffix(name, ".pdf"):
		return services.KindPDF, true
	case contentType == mimeDOCX || strings.HasSuffix(name, ".docx") || strings.HasSuffix(name, ".doc"):
		return services.KindDOCX, true
	default:
		return "", false
	}
}
