package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubExecutor struct {
	token string
	err   error
	exec  struct {
		query string
		args  []any
	}
	queried bool
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.exec.query = query
	s.exec.args = args
	return pgconn.CommandTag{}, s.err
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.queried = true
	return stubRow{token: s.token, err: s.err}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

type stubRow struct {
	token string
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) == 0 {
		return errors.New("no dest")
	}
	ptr, ok := dest[0].(*string)
	if !ok {
		return errors.New("invalid dest")
	}
	*ptr = r.token
	return nil
}

func TestVisionAPIKeyFromEnv(t *testing.T) {
	t.Setenv("TEST_VISION_KEY", " fw-key ")
	sql := &stubExecutor{token: "db-key"}
	store := NewStore(Options{VisionKeyEnv: "TEST_VISION_KEY", SQL: sql})
	key, err := store.VisionAPIKey(context.Background())
	if err != nil {
		t.Fatalf("VisionAPIKey error: %v", err)
	}
	if key != "fw-key" {
		t.Fatalf("expected fw-key, got %q", key)
	}
	if sql.queried {
		t.Fatal("database consulted although env var is set")
	}
}

func TestDobbyAPIKeyFallsBackToDatabase(t *testing.T) {
	t.Setenv("TEST_DOBBY_KEY", "")
	store := NewStore(Options{DobbyKeyEnv: "TEST_DOBBY_KEY", SQL: &stubExecutor{token: " db-dobby "}})
	key, err := store.DobbyAPIKey(context.Background())
	if err != nil {
		t.Fatalf("DobbyAPIKey error: %v", err)
	}
	if key != "db-dobby" {
		t.Fatalf("expected db-dobby, got %q", key)
	}
}

func TestDobbyAPIKeyNoRows(t *testing.T) {
	t.Setenv("TEST_DOBBY_KEY", "")
	store := NewStore(Options{DobbyKeyEnv: "TEST_DOBBY_KEY", SQL: &stubExecutor{err: pgx.ErrNoRows}})
	key, err := store.DobbyAPIKey(context.Background())
	if err != nil {
		t.Fatalf("DobbyAPIKey error: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key, got %q", key)
	}
}

func TestVisionAPIKeyNoDatabase(t *testing.T) {
	t.Setenv("TEST_VISION_KEY", "")
	store := NewStore(Options{VisionKeyEnv: "TEST_VISION_KEY"})
	key, err := store.VisionAPIKey(context.Background())
	if err != nil {
		t.Fatalf("VisionAPIKey error: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key, got %q", key)
	}
}

func TestSetToken(t *testing.T) {
	exec := &stubExecutor{}
	store := NewStore(Options{SQL: exec})
	if err := store.SetToken(context.Background(), ProviderDobby, "secret"); err != nil {
		t.Fatalf("SetToken error: %v", err)
	}
	if len(exec.exec.args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(exec.exec.args))
	}
	if v, ok := exec.exec.args[1].(string); !ok || v != "secret" {
		t.Fatalf("expected secret argument, got %T %v", exec.exec.args[1], exec.exec.args[1])
	}
}

func TestSetTokenEmpty(t *testing.T) {
	store := NewStore(Options{SQL: &stubExecutor{}})
	if err := store.SetToken(context.Background(), ProviderVision, " "); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestSetTokenNoDatabase(t *testing.T) {
	store := NewStore(Options{})
	if err := store.SetToken(context.Background(), ProviderVision, "secret"); err == nil {
		t.Fatal("expected error without a database")
	}
}
