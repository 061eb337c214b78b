package notes

import (
	"context"

	"github.com/shelfshare/notesum/internal/modules/inference"
	"go.uber.org/zap"
)

// Models names the provider models used by each endpoint.
type Models struct {
	Summary string
	Title   string
}

// Service assembles model input from request lists and post-processes the
// replies. It holds no mutable state.
type Service struct {
	gateway inference.Gateway
	models  Models
	logger  *zap.Logger
}

func NewService(gateway inference.Gateway, models Models, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, models: models, logger: logger}
}

// Summarize summarizes the notes joined by single spaces.
func (s *Service) Summarize(ctx context.Context, notes []string) (string, error) {
	text := joinNotes(notes)
	s.logger.Debug("summarizing notes", zap.Int("notes", len(notes)), zap.String("input", text))

	summary, err := s.gateway.Summarize(ctx, text, s.models.Summary)
	if err != nil {
		return "", err
	}
	s.logger.Debug("summary extracted", zap.String("summary", summary))
	return summary, nil
}

// MasterTitle condenses the titles into one refined title.
func (s *Service) MasterTitle(ctx context.Context, titles []string) (string, error) {
	prompt := buildMasterTitlePrompt(titles)
	s.logger.Debug("generating master title", zap.Int("titles", len(titles)), zap.String("input", prompt))

	raw, err := s.gateway.Summarize(ctx, prompt, s.models.Title)
	if err != nil {
		return "", err
	}
	title, err := RefineTitle(raw, titles)
	if err != nil {
		return "", err
	}
	s.logger.Debug("master title refined", zap.String("raw", raw), zap.String("title", title))
	return title, nil
}
