package credentials

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/Surojit012/DobbyCaption/internal/infra"
	"github.com/Surojit012/DobbyCaption/internal/sqlinline"
)

const (
	ProviderVision = "vision"
	ProviderDobby  = "dobby"
)

// Options configures credential resolution. Env var names come from config;
// SQL is an optional fallback source (integration_tokens table) consulted
// only when the environment is empty.
type Options struct {
	VisionKeyEnv string
	DobbyKeyEnv  string
	SQL          infra.SQLExecutor
}

// Store resolves the two inference credentials at call time. Keys are never
// cached: every lookup reads the environment (and, when configured, the
// database) fresh, so rotation takes effect on the next run.
type Store struct {
	visionKeyEnv string
	dobbyKeyEnv  string
	sql          infra.SQLExecutor
}

func NewStore(opts Options) *Store {
	visionEnv := opts.VisionKeyEnv
	if visionEnv == "" {
		visionEnv = "FIREWORKS_API_KEY"
	}
	dobbyEnv := opts.DobbyKeyEnv
	if dobbyEnv == "" {
		dobbyEnv = "DOBBY_API_KEY"
	}
	return &Store{visionKeyEnv: visionEnv, dobbyKeyEnv: dobbyEnv, sql: opts.SQL}
}

// VisionAPIKey resolves the description-stage credential.
func (s *Store) VisionAPIKey(ctx context.Context) (string, error) {
	return s.resolve(ctx, s.visionKeyEnv, ProviderVision)
}

// DobbyAPIKey resolves the caption-stage credential.
func (s *Store) DobbyAPIKey(ctx context.Context) (string, error) {
	return s.resolve(ctx, s.dobbyKeyEnv, ProviderDobby)
}

func (s *Store) resolve(ctx context.Context, envName, provider string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(envName)); key != "" {
		return key, nil
	}
	if s.sql == nil {
		return "", nil
	}
	return s.token(ctx, provider)
}

func (s *Store) token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// SetToken stores a provider credential in the database fallback.
func (s *Store) SetToken(ctx context.Context, provider, token string) error {
	if s.sql == nil {
		return errors.New("no database configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is required")
	}
	_, err := s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token)
	return err
}
