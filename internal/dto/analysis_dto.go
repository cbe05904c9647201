package dto

import "github.com/fadilmartias/job-intel/internal/model"

type AnalyzeRequest struct {
	ResumeText     string  `json:"resumeText"`
	JobDescription string  `json:"jobDescription"`
	ApplicationID  *string `json:"applicationId,omitempty"`
}

type AnalyzeResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	AnalysisID string               `json:"analysisId"`
	Data       model.AnalysisResult `json:"data"`
}
