package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"certgate/internal/certificate/models"
	id "certgate/pkg/domain"
	"certgate/pkg/platform/sentinel"
	"certgate/pkg/platform/tx"
)

// PostgresStore persists certificate records in PostgreSQL.
// This store is pure I/O; normalization and code resolution belong upstream.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed certificate store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const certificateColumns = `id, student_name, title, category, issue_date, status, verification_code, instructor_name`

// querier abstracts *sql.DB and *sql.Tx so a context-carried transaction
// (pkg/platform/tx) takes precedence over the pool.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) querier(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) Insert(ctx context.Context, cert *models.CertificateRecord) error {
	if err := cert.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO certificates (` + certificateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.querier(ctx).ExecContext(ctx, query,
		cert.ID.String(),
		cert.StudentName,
		cert.Title,
		cert.Category,
		cert.IssueDate,
		string(cert.Status),
		cert.VerificationCode,
		cert.InstructorName,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert certificate: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, certID id.CertificateID) (*models.CertificateRecord, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1`
	rec, err := scanCertificate(s.querier(ctx).QueryRowContext(ctx, query, certID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find certificate by id: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) FindByVerificationCode(ctx context.Context, code string) (*models.CertificateRecord, error) {
	if code == "" {
		return nil, sentinel.ErrNotFound
	}
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE verification_code = $1`
	rec, err := scanCertificate(s.querier(ctx).QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find certificate by code: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context, studentName string) ([]*models.CertificateRecord, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates`
	args := []any{}
	if studentName != "" {
		query += ` WHERE LOWER(student_name) = LOWER($1)`
		args = append(args, studentName)
	}
	query += ` ORDER BY id`

	rows, err := s.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	var out []*models.CertificateRecord
	for rows.Next() {
		rec, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCertificate(row rowScanner) (*models.CertificateRecord, error) {
	var rec models.CertificateRecord
	var rawID, rawStatus string
	if err := row.Scan(
		&rawID,
		&rec.StudentName,
		&rec.Title,
		&rec.Category,
		&rec.IssueDate,
		&rawStatus,
		&rec.VerificationCode,
		&rec.InstructorName,
	); err != nil {
		return nil, err
	}
	rec.ID = id.CertificateID(rawID)
	rec.Status = models.NormalizeStatus(rawStatus)
	return &rec, nil
}
