// Package llm generates article hooks and analyses through an OpenAI-compatible chat API.
// Failures never reach the caller, every method falls back to a fixed message.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/hnscope/pkg/config"
	"github.com/umputun/hnscope/pkg/domain"
)

// fallback messages returned instead of generated text
const (
	HookNoContent  = "Unable to fetch article content. Please click the link to read more."
	HookInvalid    = "Unable to generate a hook for this article. Please click the link to read more."
	HookError      = "There was an error processing this article. Please click the link to read more."
	AnalysisNoText = "Content could not be fetched for analysis."
	AnalysisBad    = "Error: Invalid article content"
	AnalysisFailed = "Error analyzing article content."
)

const (
	maxHookLen         = 500
	hookInputLen       = 2000
	analysisInputLen   = 3000
	commentInPromptLen = 300
)

const defaultHookPrompt = `Write a compelling 2-3 sentence hook for this technical article. Focus on the most interesting or unique aspects that would make readers want to learn more.

Article content:
%s

Hook:`

const defaultAnalysisPrompt = `Analyze this technical article and its comments. Structure your response in three clear sections:

1. Summary (2-3 sentences):
2. Key Points:
3. Discussion Highlights:

Article content:
%s

Comments:
%s

Analysis:`

// Summarizer makes hooks and analyses for articles
type Summarizer struct {
	client *openai.Client
	config config.LLMConfig
	limits config.LimitsConfig
}

// NewSummarizer creates a summarizer for the configured endpoint and model
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.HookPrompt == "" {
		cfg.HookPrompt = defaultHookPrompt
	}
	if cfg.AnalysisPrompt == "" {
		cfg.AnalysisPrompt = defaultAnalysisPrompt
	}
	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		limits: cfg.Limits.WithDefaults(),
	}
}

// Model returns the model name reported in analysis metadata
func (s *Summarizer) Model() string { return s.config.Model }

// Hook returns a short teaser for the article, or a fallback message
func (s *Summarizer) Hook(ctx context.Context, content string) string {
	if strings.TrimSpace(content) == "" {
		return HookNoContent
	}

	v := ValidateContent(plainText(content), s.limits.MinContent, s.limits.MaxContent, s.limits.ErrorPatterns)
	if !v.OK {
		lgr.Printf("[WARN] invalid content for hook generation: %s", v.Reason)
		return HookInvalid
	}

	hook, err := s.complete(ctx, fmt.Sprintf(s.config.HookPrompt, truncate(v.Content, hookInputLen)))
	if err != nil {
		lgr.Printf("[WARN] can't generate hook: %v", err)
		return HookError
	}
	if hook == "" {
		lgr.Printf("[WARN] empty hook generated")
		return HookInvalid
	}
	if r := []rune(hook); len(r) > maxHookLen {
		hook = string(r[:maxHookLen-3]) + "..."
	}
	return hook
}

// Analyze summarizes the article and its discussion, failures are reported in metadata
func (s *Summarizer) Analyze(ctx context.Context, content string, comments []domain.Comment) domain.Analysis {
	if strings.TrimSpace(content) == "" {
		return domain.Analysis{Text: AnalysisNoText, Metadata: domain.AnalysisMetadata{Model: s.Model(), Error: "No content available"}}
	}

	v := ValidateContent(plainText(content), s.limits.MinContent, s.limits.MaxContent, s.limits.ErrorPatterns)
	if !v.OK {
		lgr.Printf("[WARN] invalid content for analysis: %s", v.Reason)
		return domain.Analysis{Text: AnalysisBad, Metadata: domain.AnalysisMetadata{Model: s.Model(), Error: v.Reason}}
	}

	valid := ValidateComments(comments, s.limits)
	if len(valid) == 0 {
		lgr.Printf("[DEBUG] no valid comments for analysis")
	}
	lines := make([]string, 0, len(valid))
	for i, c := range valid {
		lines = append(lines, fmt.Sprintf("Comment %d by %s: %s", i+1, c.Author, truncate(c.Text, commentInPromptLen)))
	}

	prompt := fmt.Sprintf(s.config.AnalysisPrompt, truncate(v.Content, analysisInputLen), strings.Join(lines, "\n"))
	text, err := s.complete(ctx, prompt)
	if err == nil && text == "" {
		err = errors.New("empty response")
	}
	if err != nil {
		lgr.Printf("[WARN] can't analyze article: %v", err)
		return domain.Analysis{Text: AnalysisFailed, Metadata: domain.AnalysisMetadata{Model: s.Model(), Error: err.Error()}}
	}

	return domain.Analysis{
		Text: text,
		Metadata: domain.AnalysisMetadata{
			Model:            s.Model(),
			ContentLength:    len([]rune(v.Content)),
			CommentsAnalyzed: len(valid),
		},
	}
}

// complete sends a single user prompt and returns the trimmed reply
func (s *Summarizer) complete(ctx context.Context, prompt string) (string, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: float32(s.config.Temperature),
		TopP:        0.8,
		MaxTokens:   s.config.MaxTokens,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from llm")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
