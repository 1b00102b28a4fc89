package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finmitra/finmitra/internal/profile"
	"github.com/finmitra/finmitra/pkg/database"
	"github.com/finmitra/finmitra/pkg/pagination"
	"github.com/finmitra/finmitra/pkg/query"
	"github.com/finmitra/finmitra/pkg/repository"
)

// Filters narrows a history listing.
type Filters struct {
	UserID *string
	Domain *string
}

type store struct {
	db      *sql.DB
	pageCfg pagination.Config
	logger  *slog.Logger
}

// NewStore creates the Postgres-backed profile/history store.
func NewStore(db database.System, pageCfg pagination.Config, logger *slog.Logger) Store {
	return &store{
		db:      db.Connection(),
		pageCfg: pageCfg,
		logger:  logger.With("system", "history"),
	}
}

func (s *store) Handler() *Handler {
	return NewHandler(s, s.pageCfg, s.logger)
}

func (s *store) LoadProfile(ctx context.Context, userID string) (profile.Profile, error) {
	const q = `SELECT attributes FROM public.profiles WHERE user_id = $1`

	var raw []byte
	err := s.db.QueryRowContext(ctx, q, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, nil
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: load profile: %v", ErrUnavailable, err)
	}

	var attrs map[string]profile.Attribute
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: decode profile: %v", ErrUnavailable, err)
	}

	return profile.Profile{Attributes: attrs}, nil
}

func (s *store) SaveProfile(ctx context.Context, userID string, p profile.Profile) error {
	const q = `
		INSERT INTO public.profiles (user_id, attributes, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE
		SET attributes = EXCLUDED.attributes, updated_at = now()`

	raw, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("%w: encode profile: %v", ErrUnavailable, err)
	}

	if _, err := s.db.ExecContext(ctx, q, userID, raw); err != nil {
		return fmt.Errorf("%w: save profile: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *store) AppendTurn(ctx context.Context, record TurnRecord) error {
	const q = `
		INSERT INTO public.history (id, user_id, question, answer, domain, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	err := repository.ExecExpectOne(ctx, s.db, q,
		record.ID, record.UserID, record.Question, record.Answer,
		record.Domain, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: append turn: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *store) Recent(ctx context.Context, userID string, n int) ([]TurnRecord, error) {
	if n < 1 {
		return []TurnRecord{}, nil
	}

	b := query.NewBuilder(turnProjection, defaultTurnSort...).
		WhereEquals("userId", userID)
	sqlText, args := b.BuildPage(1, n)

	records, err := repository.QueryMany(ctx, s.db, sqlText, args, scanTurn)
	if err != nil {
		return nil, fmt.Errorf("%w: recent turns: %v", ErrUnavailable, err)
	}
	return records, nil
}

func (s *store) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[TurnRecord], error) {
	page.Normalize(s.pageCfg)

	b := query.NewBuilder(turnProjection, defaultTurnSort...).
		WhereEquals("userId", filters.UserID).
		WhereEquals("domain", filters.Domain).
		WhereSearch(page.Search, "question", "answer").
		OrderByFields(page.Sort)

	countSQL, countArgs := b.BuildCount()
	total, err := repository.QueryOne(ctx, s.db, countSQL, countArgs, scanCount)
	if err != nil {
		return nil, fmt.Errorf("%w: count turns: %v", ErrUnavailable, err)
	}

	pageSQL, pageArgs := b.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanTurn)
	if err != nil {
		return nil, fmt.Errorf("%w: list turns: %v", ErrUnavailable, err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func scanTurn(s repository.Scanner) (TurnRecord, error) {
	var r TurnRecord
	err := s.Scan(&r.ID, &r.UserID, &r.Question, &r.Answer, &r.Domain, &r.CreatedAt)
	return r, err
}

func scanCount(s repository.Scanner) (int, error) {
	var n int
	err := s.Scan(&n)
	return n, err
}
