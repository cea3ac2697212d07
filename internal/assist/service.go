package assist

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/logsweep/internal/credential"
	"github.com/dshills/logsweep/internal/llm"
	"github.com/dshills/logsweep/internal/profile"
	"github.com/dshills/logsweep/internal/prompt"
	"github.com/dshills/logsweep/internal/redact"
)

// Config holds the settings a Service needs. Temperatures come from the operation profiles.
type Config struct {
	Model      string
	MaxTokens  int
	BaseURL    string
	Redact     bool
	HTTPClient *http.Client
}

// ProviderFunc builds a provider for an API key.
type ProviderFunc func(apiKey string) (llm.Provider, error)

// Request is the buffer an operation works on.
type Request struct {
	Code     string
	Language string
	FileName string
}

// Service runs model operations behind a credential gate. It is safe for concurrent use.
type Service struct {
	cfg         Config
	gate        *credential.Gate
	newProvider ProviderFunc
	log         *zap.Logger
}

// New returns a Service. When newProvider is nil, providers are resolved from cfg.Model.
func New(cfg Config, gate *credential.Gate, newProvider ProviderFunc, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if newProvider == nil {
		newProvider = func(key string) (llm.Provider, error) {
			return llm.Resolve(llm.Options{
				Model:   cfg.Model,
				APIKey:  key,
				BaseURL: cfg.BaseURL,
				Client:  cfg.HTTPClient,
			})
		}
	}
	return &Service{cfg: cfg, gate: gate, newProvider: newProvider, log: logger}
}

// SmartRemove asks the model to clean req.Code and reconciles the answer.
func (s *Service) SmartRemove(ctx context.Context, req Request) (Result, error) {
	prof, err := profile.LoadBuiltin(profile.SmartRemove)
	if err != nil {
		return Result{}, fmt.Errorf("assist.SmartRemove: %w", err)
	}
	res, err := reconcile(ctx, request{
		code:     req.Code,
		language: req.Language,
		fileName: req.FileName,
		redact:   s.cfg.Redact,
	}, func(ctx context.Context, text string) (string, error) {
		return s.call(ctx, OpSmartRemove, prof.Temperature, text)
	})
	if err != nil {
		return Result{}, err
	}
	s.log.Debug("smart remove reconciled",
		zap.String("file", req.FileName),
		zap.Bool("extracted", res.Extracted),
		zap.Int("removed", res.RemovedCount),
		zap.Int("kept", res.KeptCount))
	return res, nil
}

// AnalyzeLogs returns the model's advice on which log statements to keep.
func (s *Service) AnalyzeLogs(ctx context.Context, req Request) (string, error) {
	return s.passThrough(ctx, OpAnalyzeLogs, profile.AnalyzeLogs, req)
}

// GenerateLogs returns the model's proposal for adding log statements.
func (s *Service) GenerateLogs(ctx context.Context, req Request) (string, error) {
	return s.passThrough(ctx, OpGenerateLogs, profile.GenerateLogs, req)
}

// AnalyzeQuality returns the model's code review.
func (s *Service) AnalyzeQuality(ctx context.Context, req Request) (string, error) {
	return s.passThrough(ctx, OpCodeQuality, profile.CodeQuality, req)
}

func (s *Service) passThrough(ctx context.Context, op Op, name string, req Request) (string, error) {
	prof, err := profile.LoadBuiltin(name)
	if err != nil {
		return "", fmt.Errorf("assist: %s: %w", op, err)
	}

	code, vault := req.Code, (*redact.Vault)(nil)
	if s.cfg.Redact {
		code, vault = redact.Redact(req.Code)
	}

	text := prompt.Build(prompt.BuildOpts{
		Profile:  prof,
		Code:     code,
		Language: req.Language,
		FileName: req.FileName,
	})

	out, err := s.call(ctx, op, prof.Temperature, text)
	if err != nil {
		return "", wrap(op, err)
	}
	if strings.TrimSpace(out) == "" {
		return prof.FailureText, nil
	}
	return vault.Restore(out), nil
}

// call is the single remote round trip shared by all operations.
func (s *Service) call(ctx context.Context, op Op, temperature float64, text string) (string, error) {
	key, err := s.gate.Credential(ctx)
	if err != nil {
		return "", err
	}
	provider, err := s.newProvider(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}

	start := time.Now()
	out, err := provider.Generate(ctx, text, llm.Settings{
		Temperature: temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		s.log.Warn("model call failed",
			zap.String("op", string(op)),
			zap.String("provider", provider.Name()),
			zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}
	s.log.Debug("model call",
		zap.String("op", string(op)),
		zap.String("provider", provider.Name()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("prompt_bytes", len(text)),
		zap.Int("response_bytes", len(out)))
	return out, nil
}
