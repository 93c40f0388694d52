package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt renders the fixed evaluation instructions around
// the extracted resume text. The template pins both the rubric and the exact
// JSON shape the model must answer with; the normalizer enforces that shape
// a second time on whatever actually comes back.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume reviewer and career advisor. Analyze the following resume and provide a comprehensive evaluation.

RESUME CONTENT:
%s

Please analyze this resume and provide a detailed evaluation in the following JSON format:
{
  "score": <number between 0-100>,
  "strengths": [
    "<specific strength 1>",
    "<specific strength 2>",
    "<specific strength 3>"
  ],
  "weaknesses": [
    "<specific weakness 1>",
    "<specific weakness 2>",
    "<specific weakness 3>"
  ],
  "suggestions": [
    "<actionable suggestion 1>",
    "<actionable suggestion 2>",
    "<actionable suggestion 3>"
  ],
  "missingKeywords": [
    "<missing keyword 1>",
    "<missing keyword 2>"
  ],
  "atsScore": <number between 0-100>,
  "keywordScore": <number between 0-100>,
  "formattingScore": <number between 0-100>,
  "experienceScore": <number between 0-100>,
  "skillsScore": <number between 0-100>,
  "summary": "<brief 2-3 sentence summary of the resume's overall quality>"
}

Evaluation Criteria:
1. ATS Friendliness (atsScore): Check formatting, structure, use of standard sections, file compatibility
2. Keyword Optimization (keywordScore): Relevance of keywords, industry-specific terms, action verbs
3. Formatting & Structure (formattingScore): Consistency, readability, professional appearance, section organization
4. Experience Clarity (experienceScore): Clear job descriptions, quantifiable achievements, relevant experience
5. Skills Relevance (skillsScore): Appropriate skills listed, technical and soft skills balance

Provide specific, actionable feedback. Be constructive and professional. Return ONLY valid JSON, no additional text.`, resumeText)
}
