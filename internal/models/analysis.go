package models

import "time"

// Analysis is the stored result of one resume evaluation. It is created once
// by the analyzer, immutable afterwards, and only ever removed by cache
// eviction. Every score is clamped to [0, 100] before it gets here.
type Analysis struct {
	ID              string    `json:"id"`
	Score           int       `json:"score"`
	Strengths       []string  `json:"strengths"`
	Weaknesses      []string  `json:"weaknesses"`
	Suggestions     []string  `json:"suggestions"`
	MissingKeywords []string  `json:"missingKeywords"`
	ATSScore        int       `json:"atsScore"`
	KeywordScore    int       `json:"keywordScore"`
	FormattingScore int       `json:"formattingScore"`
	ExperienceScore int       `json:"experienceScore"`
	SkillsScore     int       `json:"skillsScore"`
	Summary         string    `json:"summary"`
	FileName        string    `json:"fileName"`
	AnalyzedAt      time.Time `json:"analyzedAt"`
}

// AnalysisResponse is the POST /analyze payload: the stored record minus
// fileName and analyzedAt, which only the read path exposes.
type AnalysisResponse struct {
	ID              string   `json:"id"`
	Score           int      `json:"score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Suggestions     []string `json:"suggestions"`
	MissingKeywords []string `json:"missingKeywords"`
	ATSScore        int      `json:"atsScore"`
	KeywordScore    int      `json:"keywordScore"`
	FormattingScore int      `json:"formattingScore"`
	ExperienceScore int      `json:"experienceScore"`
	SkillsScore     int      `json:"skillsScore"`
	Summary         string   `json:"summary"`
}

func NewAnalysisResponse(a *Analysis) AnalysisResponse {
	return AnalysisResponse{
		ID:              a.ID,
		Score:           a.Score,
		Strengths:       a.Strengths,
		Weaknesses:      a.Weaknesses,
		Suggestions:     a.Suggestions,
		MissingKeywords: a.MissingKeywords,
		ATSScore:        a.ATSScore,
		KeywordScore:    a.KeywordScore,
		FormattingScore: a.FormattingScore,
		ExperienceScore: a.ExperienceScore,
		SkillsScore:     a.SkillsScore,
		Summary:         a.Summary,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
