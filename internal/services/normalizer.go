package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	// defaultSummary substitutes a missing or non-string summary field.
	defaultSummary = "Resume analysis completed."
	// replyExcerptLimit bounds how much of an unparseable reply ends up in
	// the error message.
	replyExcerptLimit = 200
)

// UnparseableReplyError reports that the backend's reply held no JSON object.
// Excerpt is capped at replyExcerptLimit characters of the original text.
type UnparseableReplyError struct {
	Excerpt string
	Err     error
}

func (e *UnparseableReplyError) Error() string {
	return fmt.Sprintf("failed to parse AI response as JSON: %v. Response: %s", e.Err, e.Excerpt)
}

func (e *UnparseableReplyError) Unwrap() error {
	return e.Err
}

// NormalizeReply converts the model's free-form reply into the analysis
// fields of a typed result. It never trusts the reply to match the requested
// schema: the JSON is first parsed generically, then projected field by field
// with defaults for anything missing and every score clamped into [0, 100].
// The caller attaches id, file name and timestamp.
func NormalizeReply(reply string) (*models.Analysis, error) {
	jsonText := extractJSON(reply)

	var fields map[string]any
	if err := json.Unmarshal([]byte(jsonText), &fields); err != nil {
		return nil, &UnparseableReplyError{Excerpt: excerpt(reply, replyExcerptLimit), Err: err}
	}

	return &models.Analysis{
		Score:           clampScore(fields["score"]),
		Strengths:       stringList(fields["strengths"]),
		Weaknesses:      stringList(fields["weaknesses"]),
		Suggestions:     stringList(fields["suggestions"]),
		MissingKeywords: stringList(fields["missingKeywords"]),
		ATSScore:        clampScore(fields["atsScore"]),
		KeywordScore:    clampScore(fields["keywordScore"]),
		FormattingScore: clampScore(fields["formattingScore"]),
		ExperienceScore: clampScore(fields["experienceScore"]),
		SkillsScore:     clampScore(fields["skillsScore"]),
		Summary:         stringOrDefault(fields["summary"], defaultSummary),
	}, nil
}

// extractJSON strips markdown code fences and, when the text contains a
// brace-delimited span, narrows to the first "{" through the last "}". The
// model is told to answer with bare JSON but routinely wraps it anyway.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}

// clampScore coerces an untyped JSON value into a score in [0, 100].
// Anything non-numeric, including absence, counts as 0.
func clampScore(value any) int {
	number, ok := value.(float64)
	if !ok {
		return 0
	}

	score := int(math.Round(number))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// stringList coerces an untyped JSON value into a non-nil string slice,
// keeping only string elements.
func stringList(value any) []string {
	items := []string{}

	list, ok := value.([]any)
	if !ok {
		return items
	}

	for _, item := range list {
		if s, ok := item.(string); ok {
			items = append(items, s)
		}
	}
	return items
}

func stringOrDefault(value any, fallback string) string {
	if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
