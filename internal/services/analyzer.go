package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

// minResumeTextLength is the smallest trimmed extraction that still counts as
// a resume. Anything shorter is insufficient content, not a decode failure.
const minResumeTextLength = 50

// ErrInsufficientContent means the document decoded fine but held too little
// text to evaluate.
var ErrInsufficientContent = errors.New("could not extract sufficient text from the resume")

// AllModelsFailedError reports that every model in the fallback chain was
// unavailable. Err carries the last unavailable-model error seen.
type AllModelsFailedError struct {
	Models []string
	Err    error
}

func (e *AllModelsFailedError) Error() string {
	return fmt.Sprintf("failed to analyze resume with AI: %v", e.Err)
}

func (e *AllModelsFailedError) Unwrap() error {
	return e.Err
}

// AnalyzerService drives one upload end to end: extract, prompt, invoke with
// model fallback, normalize, store.
type AnalyzerService interface {
	AnalyzeResume(ctx context.Context, data []byte, fileName string, kind DocumentKind) (*models.Analysis, error)
}

type analyzerService struct {
	extractor     ExtractorService
	gemini        GeminiService
	analysisRepo  repositories.AnalysisRepository
	promptBuilder *PromptBuilder
	models        []string
	logger        *zap.Logger
}

func NewAnalyzerService(
	extractor ExtractorService,
	gemini GeminiService,
	analysisRepo repositories.AnalysisRepository,
	modelChain []string,
	logger *zap.Logger,
) AnalyzerService {
	return &analyzerService{
		extractor:     extractor,
		gemini:        gemini,
		analysisRepo:  analysisRepo,
		promptBuilder: NewPromptBuilder(),
		models:        modelChain,
		logger:        logger,
	}
}

// AnalyzeResume implements AnalyzerService.
func (a *analyzerService) AnalyzeResume(ctx context.Context, data []byte, fileName string, kind DocumentKind) (*models.Analysis, error) {
	resumeText, err := a.extractor.Extract(data, kind)
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(resumeText)) < minResumeTextLength {
		return nil, ErrInsufficientContent
	}

	prompt := a.promptBuilder.BuildResumeAnalysisPrompt(resumeText)
	a.logger.Debug("built evaluation prompt",
		zap.String("file", fileName),
		zap.Int("prompt_chars", len(prompt)),
	)

	reply, err := a.generateWithFallback(ctx, prompt)
	if err != nil {
		return nil, err
	}

	analysis, err := NormalizeReply(reply)
	if err != nil {
		return nil, err
	}

	analysis.FileName = fileName
	analysis.AnalyzedAt = time.Now()

	id := a.analysisRepo.Insert(analysis)
	a.logger.Info("resume analyzed",
		zap.String("id", id),
		zap.String("file", fileName),
		zap.Int("score", analysis.Score),
	)

	return analysis, nil
}

// generateWithFallback walks the model chain in order, one call per model.
// Only an unavailable-model error moves on to the next entry; the first
// success short-circuits and every other failure aborts immediately since it
// would hit all models equally.
func (a *analyzerService) generateWithFallback(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, model := range a.models {
		reply, err := a.gemini.GenerateText(ctx, model, prompt)
		if err == nil {
			return reply, nil
		}

		if !IsModelUnavailable(err) {
			return "", err
		}

		a.logger.Warn("model not available, trying next model",
			zap.String("model", model),
			zap.Error(err),
		)
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("no models configured")
	}
	return "", &AllModelsFailedError{Models: a.models, Err: lastErr}
}
