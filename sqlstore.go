package verdict

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/verdict-rules/verdict/ruleql"
)

// SQLStore persists rules in a SQL database through database/sql. The
// caller supplies the opened handle and registers a driver; the store is
// developed and tested against mattn/go-sqlite3.
//
// The parsed tree is stored alongside the raw expression as tagged-variant
// JSON, so a loaded rule never needs re-parsing.
type SQLStore struct {
	db *sql.DB
}

const createRuleTable = `
CREATE TABLE IF NOT EXISTS rule (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	expr TEXT NOT NULL,
	ast  TEXT NOT NULL
);`

// NewSQLStore prepares the rule table on db and returns the store.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	if _, err := db.Exec(createRuleTable); err != nil {
		return nil, errors.Wrap(err, "creating rule table")
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) SaveRule(ctx context.Context, name, expr string, root ruleql.Node) (*Rule, error) {
	ast, err := ruleql.MarshalNode(root)
	if err != nil {
		return nil, errors.Wrap(err, "encoding rule tree")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rule (name, expr, ast) VALUES (?, ?, ?)`,
		name, expr, string(ast))
	if err != nil {
		return nil, errors.Wrapf(err, "saving rule %q", name)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrapf(err, "reading id for rule %q", name)
	}

	return &Rule{
		ID:   strconv.FormatInt(id, 10),
		Name: name,
		Expr: expr,
		Root: root,
	}, nil
}

func (s *SQLStore) Rule(ctx context.Context, id string) (*Rule, error) {
	r := Rule{}
	var ast string

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, expr, ast FROM rule WHERE id = ?`, id)
	switch err := row.Scan(&r.ID, &r.Name, &r.Expr, &ast); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	case nil:
	default:
		return nil, errors.Wrapf(err, "loading rule %s", id)
	}

	root, err := ruleql.UnmarshalNode([]byte(ast))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding tree for rule %s", id)
	}
	r.Root = root
	return &r, nil
}

func (s *SQLStore) Rules(ctx context.Context) ([]*Rule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, expr, ast FROM rule ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "listing rules")
	}
	defer rows.Close()

	var out []*Rule
	for rows.Next() {
		r := Rule{}
		var ast string
		if err := rows.Scan(&r.ID, &r.Name, &r.Expr, &ast); err != nil {
			return nil, errors.Wrap(err, "scanning rule row")
		}
		root, err := ruleql.UnmarshalNode([]byte(ast))
		if err != nil {
			return nil, errors.Wrapf(err, "decoding tree for rule %s", r.ID)
		}
		r.Root = root
		out = append(out, &r)
	}
	return out, rows.Err()
}
