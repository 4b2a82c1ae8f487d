package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tmuriuki/legal-document-analyzer/internal/config"
	"github.com/tmuriuki/legal-document-analyzer/internal/models"
	"github.com/tmuriuki/legal-document-analyzer/internal/utils"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

type geminiAnalyzer struct {
	baseURL     string
	projectID   string
	location    string
	model       string
	tokenSource oauth2.TokenSource
	logger      *utils.Logger
	client      *http.Client
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGeminiAnalyzer builds an analyzer against the Vertex AI generateContent
// endpoint. Credentials come from the application default chain, so
// GOOGLE_APPLICATION_CREDENTIALS is honored.
func NewGeminiAnalyzer(cfg *config.Config, logger *utils.Logger) (Analyzer, error) {
	tokenSource, err := google.DefaultTokenSource(context.Background(), cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to build Google token source: %w", err)
	}

	baseURL := fmt.Sprintf("https://%s-aiplatform.googleapis.com", cfg.Location)
	return NewGeminiAnalyzerWithEndpoint(baseURL, cfg, tokenSource, logger), nil
}

// NewGeminiAnalyzerWithEndpoint allows pointing the analyzer at an arbitrary
// endpoint and token source.
func NewGeminiAnalyzerWithEndpoint(baseURL string, cfg *config.Config, tokenSource oauth2.TokenSource, logger *utils.Logger) Analyzer {
	return &geminiAnalyzer{
		baseURL:     baseURL,
		projectID:   cfg.ProjectID,
		location:    cfg.Location,
		model:       cfg.ModelID,
		tokenSource: tokenSource,
		logger:      logger,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Analyze degrades to fixed fallback payloads instead of failing the request:
// empty input and provider errors both yield a well-formed result.
func (a *geminiAnalyzer) Analyze(ctx context.Context, text string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return emptyDocumentResult(), nil
	}

	// Truncate text if too long (keep first 4000 characters)
	if len(text) > 4000 {
		text = text[:4000] + "..."
	}

	prompt := fmt.Sprintf(`Analyze the following legal document and provide a structured response in JSON format only.

Document text:
%s

Respond ONLY with a valid JSON object (no markdown, no code blocks) with the following structure:
{
  "summary": "A concise 2-3 sentence summary of the document",
  "pros": ["Favorable terms and protections for the signing party"],
  "cons": ["Unfavorable terms, obligations, or risks"],
  "loopholes": ["Ambiguities, omissions, or exploitable gaps in the document"]
}`, text)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		a.baseURL, a.projectID, a.location, a.model)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := a.tokenSource.Token()
	if err != nil {
		a.logger.Error("Failed to obtain Google access token", "error", err)
		return failedAnalysisResult(), nil
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("Gemini request failed", "error", err)
		return failedAnalysisResult(), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.logger.Error("Failed to read Gemini response", "error", err)
		return failedAnalysisResult(), nil
	}

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("Gemini API error", "status", resp.StatusCode, "body", string(body))
		return failedAnalysisResult(), nil
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		a.logger.Error("Failed to unmarshal Gemini response", "error", err)
		return failedAnalysisResult(), nil
	}

	if geminiResp.Error != nil {
		a.logger.Error("Gemini API error", "message", geminiResp.Error.Message, "api_status", geminiResp.Error.Status)
		return failedAnalysisResult(), nil
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		a.logger.Error("Gemini response has no candidates")
		return failedAnalysisResult(), nil
	}

	content := geminiResp.Candidates[0].Content.Parts[0].Text

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		// The model sometimes wraps JSON in markdown code blocks
		content = extractJSON(content)
		if err := json.Unmarshal([]byte(content), &result); err != nil {
			a.logger.Error("Failed to parse Gemini analysis as JSON", "content", content)
			return failedAnalysisResult(), nil
		}
	}

	return &result, nil
}

// extractJSON attempts to extract JSON from markdown code blocks
func extractJSON(content string) string {
	if len(content) > 7 && content[:3] == "```" {
		start := 0
		end := len(content)

		// Find first newline after opening ```
		for i := 3; i < len(content); i++ {
			if content[i] == '\n' {
				start = i + 1
				break
			}
		}

		// Find closing ```
		for i := len(content) - 1; i >= 0; i-- {
			if i >= 2 && content[i-2:i+1] == "```" {
				end = i - 2
				break
			}
		}

		if start < end {
			content = content[start:end]
		}
	}

	return content
}
