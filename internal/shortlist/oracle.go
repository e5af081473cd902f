package shortlist

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "github.com/sijms/go-ora/v2"
	"github.com/sijms/go-ora/v2/network"

	"propertyfinder/internal/config"
)

// Table is the Oracle table backing the shortlist.
const Table = "PROPERTY_SHORTLIST"

const createTable = `
	CREATE TABLE ` + Table + ` (
		ENTRY_KEY   VARCHAR2(512) PRIMARY KEY,
		PROPERTY_ID VARCHAR2(128),
		TITLE       VARCHAR2(256),
		PRICE       VARCHAR2(64),
		LOCATION    VARCHAR2(128),
		SAVED_AT    TIMESTAMP
	)`

// DSN builds an encoded go-ora connection string. A wallet location selects
// mTLS; otherwise the connection uses TCPS with credentials.
func DSN(cfg config.Oracle) string {
	port := strconv.Itoa(cfg.Port)
	if cfg.WalletLocation != "" {
		return fmt.Sprintf(
			"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
			url.PathEscape(cfg.Username), url.PathEscape(cfg.Password),
			cfg.Host, port, cfg.Service, url.PathEscape(cfg.WalletLocation))
	}
	return (&url.URL{
		Scheme:   "oracle",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     cfg.Host + ":" + port,
		Path:     "/" + cfg.Service,
		RawQuery: "ssl=true",
	}).String()
}

// OracleStore keeps the shortlist in an Oracle table.
type OracleStore struct {
	db *sql.DB
}

// NewOracleStore wraps an open connection pool.
func NewOracleStore(db *sql.DB) *OracleStore {
	return &OracleStore{db: db}
}

// OpenOracle connects, pings and makes sure the table exists.
func OpenOracle(ctx context.Context, cfg config.Oracle) (*OracleStore, error) {
	db, err := sql.Open("oracle", DSN(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "open database connection")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	s := NewOracleStore(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the shortlist table if it does not exist yet.
func (s *OracleStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		if isOraError(err, oraNameInUse) {
			return nil
		}
		return errors.Wrap(err, "create shortlist table")
	}
	return nil
}

// Oracle error numbers the store handles.
const (
	oraUniqueViolation = 1   // ORA-00001: unique constraint violated
	oraNameInUse       = 955 // ORA-00955: name is already used by an existing object
)

// isOraError reports whether err carries the given ORA error number.
func isOraError(err error, code int) bool {
	if err == nil {
		return false
	}
	var oe *network.OracleError
	if errors.As(err, &oe) {
		return oe.ErrCode == code
	}
	return strings.Contains(err.Error(), fmt.Sprintf("ORA-%05d", code))
}

func (s *OracleStore) Add(ctx context.Context, e Entry) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+Table+` WHERE ENTRY_KEY = :1`, e.Key()).Scan(&n)
	if err != nil {
		return false, errors.Wrap(err, "query shortlist")
	}
	if n > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+Table+` (ENTRY_KEY, PROPERTY_ID, TITLE, PRICE, LOCATION, SAVED_AT)
		 VALUES (:1, :2, :3, :4, :5, :6)`,
		e.Key(), e.ID, e.Title, e.Price, e.Location, e.SavedAt)
	if err != nil {
		// A concurrent save of the same entry won the insert.
		if isOraError(err, oraUniqueViolation) {
			return false, nil
		}
		return false, errors.Wrap(err, "insert shortlist entry")
	}
	return true, nil
}

func (s *OracleStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT PROPERTY_ID, TITLE, PRICE, LOCATION, SAVED_AT FROM `+Table+` ORDER BY SAVED_AT`)
	if err != nil {
		return nil, errors.Wrap(err, "query shortlist")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                       Entry
			id, title, price, where sql.NullString
		)
		if err := rows.Scan(&id, &title, &price, &where, &e.SavedAt); err != nil {
			return nil, errors.Wrap(err, "scan shortlist entry")
		}
		e.ID, e.Title, e.Price, e.Location = id.String, title.String, price.String, where.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *OracleStore) Close() error { return s.db.Close() }
