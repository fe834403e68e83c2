package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"polydash/internal/app/port"
	"polydash/internal/domain/entity"
	"polydash/internal/infrastructure/configloader"
)

const (
	newsQueryMaxRunes = 100
	googleNewsURL     = "https://news.google.com/search?q=%s&hl=en-US&gl=US"
	reutersSearchURL  = "https://www.reuters.com/search/news?query=%s"
	analysisFallback  = "Unable to analyze this market right now."

	analystSystemPrompt = "You are an expert prediction market analyst. Be concise and to the point, and ground every claim in real-world information."
	analystUserPrompt   = `Analyze this prediction market:

Market: "%s"
Category: %s
Current price (implied probability): %s%%

Reply briefly:

1. Real probability: a percentage and a one or two sentence rationale.
2. Key factors: the three that matter most.
3. Risk: what could prove the market wrong, in one sentence.
4. Verdict: buy YES, buy NO or stay out, and why, in one or two sentences.

Keep the whole answer under 150 words.`
)

// analysisServiceImpl implements port.AnalysisService
type analysisServiceImpl struct {
	llm    port.LLMClient
	cfg    *configloader.Config
	logger port.Logger
}

// NewAnalysisService creates a new instance of analysisServiceImpl.
func NewAnalysisService(llm port.LLMClient, cfg *configloader.Config, l port.Logger) port.AnalysisService {
	s := &analysisServiceImpl{
		llm:    llm,
		cfg:    cfg,
		logger: l,
	}
	if cfg.Analysis.APIKey == "" {
		l.Warn("Analysis API key is not set, /api/analyze will answer 500")
	} else {
		l.Info("AnalysisService initialized", "model", cfg.Analysis.Model)
	}
	return s
}

// Analyze implements port.AnalysisService.
func (s *analysisServiceImpl) Analyze(ctx context.Context, req entity.AnalysisRequest) (entity.Analysis, error) {
	if s.cfg.Analysis.APIKey == "" {
		return entity.Analysis{}, entity.NotConfigured("GROQ_API_KEY not configured")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return entity.Analysis{}, entity.BadRequest("Missing title")
	}

	ctx, cancel := withTimeout(ctx, s.cfg.Analysis.TimeoutMillis)
	defer cancel()

	text, err := s.llm.Complete(ctx, buildAnalysisPrompt(title, req.Category, req.ImpliedPct))
	switch {
	case errors.Is(err, port.ErrEmptyCompletion):
		text = analysisFallback
	case err != nil:
		s.logger.Error("LLM request failed", "title", title, "error", err)
		return entity.Analysis{}, entity.UpstreamFailure("LLM API error", err)
	}

	return entity.Analysis{Analysis: text, NewsLinks: NewsLinksFor(title)}, nil
}

func buildAnalysisPrompt(title, category string, impliedPct float64) []port.ChatMessage {
	if category = strings.TrimSpace(category); category == "" {
		category = "general"
	}
	if impliedPct <= 0 {
		impliedPct = 50
	}
	return []port.ChatMessage{
		{Role: "system", Content: analystSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(analystUserPrompt, title, category, strconv.FormatFloat(impliedPct, 'f', -1, 64))},
	}
}

// NewsLinksFor builds news search links for a market title: question marks removed,
// cut to 100 characters, percent-encoded.
func NewsLinksFor(title string) entity.NewsLinks {
	q := []rune(strings.ReplaceAll(title, "?", ""))
	if len(q) > newsQueryMaxRunes {
		q = q[:newsQueryMaxRunes]
	}
	escaped := strings.ReplaceAll(url.QueryEscape(string(q)), "+", "%20")
	return entity.NewsLinks{
		Google:  fmt.Sprintf(googleNewsURL, escaped),
		Reuters: fmt.Sprintf(reutersSearchURL, escaped),
	}
}
