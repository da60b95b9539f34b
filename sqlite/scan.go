package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/twittercards"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ twittercards.CardService = (*CardService)(nil)

// CardService implements twittercards.CardService using SQLite.
type CardService struct {
	db *DB
}

// NewCardService creates a new CardService.
func NewCardService(db *DB) *CardService {
	return &CardService{db: db}
}

// hashCard returns the hex xxHash of a card's JSON encoding.
func hashCard(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// CreateScan records a scan, deriving its ID, type, validity, hash and
// timestamp.
func (s *CardService) CreateScan(ctx context.Context, scan *twittercards.Scan) error {
	if err := scan.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(scan.Card)
	if err != nil {
		return fmt.Errorf("encoding card: %w", err)
	}

	scan.ID = uuid.New().String()
	scan.Type = scan.Card.Type()
	scan.Valid = scan.Card.IsValid()
	scan.Hash = hashCard(data)
	scan.ScannedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scans (id, url, type, valid, card, hash, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, scan.ID, scan.URL, string(scan.Type), scan.Valid, string(data), scan.Hash,
		scan.ScannedAt.Format(time.RFC3339))

	return err
}

// FindScanByID retrieves a scan by ID.
func (s *CardService) FindScanByID(ctx context.Context, id string) (*twittercards.Scan, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, type, valid, card, hash, scanned_at
		FROM scans
		WHERE id = ?
	`, id)

	scan, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, twittercards.Errorf(twittercards.ENOTFOUND, "scan not found")
	}
	if err != nil {
		return nil, err
	}
	return scan, nil
}

// FindScans retrieves scans matching the filter, newest first.
func (s *CardService) FindScans(ctx context.Context, filter twittercards.ScanFilter) ([]*twittercards.Scan, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, type, valid, card, hash, scanned_at FROM scans WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.Valid != nil {
		query.WriteString(" AND valid = ?")
		args = append(args, *filter.Valid)
	}

	// rowid breaks ties between scans recorded within the same second.
	query.WriteString(" ORDER BY scanned_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scans := []*twittercards.Scan{}
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}

	return scans, rows.Err()
}

// DeleteScan permanently removes a scan.
func (s *CardService) DeleteScan(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM scans WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return twittercards.Errorf(twittercards.ENOTFOUND, "scan not found")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*twittercards.Scan, error) {
	var scan twittercards.Scan
	var cardType, cardJSON, scannedAt string

	if err := row.Scan(&scan.ID, &scan.URL, &cardType, &scan.Valid, &cardJSON, &scan.Hash, &scannedAt); err != nil {
		return nil, err
	}
	scan.Type = twittercards.CardType(cardType)

	var card twittercards.Card
	if err := json.Unmarshal([]byte(cardJSON), &card); err != nil {
		return nil, fmt.Errorf("failed to decode card: %w", err)
	}
	scan.Card = &card

	var err error
	scan.ScannedAt, err = parseRFC3339(scannedAt, "scanned_at")
	if err != nil {
		return nil, err
	}

	return &scan, nil
}
