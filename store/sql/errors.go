package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-bakery/core"
	goerrors "github.com/goliatone/go-errors"
)

// listLimit bounds list reads; a storefront catalog stays far below it.
const listLimit = 500

func notFound(kind string, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) || goerrors.IsNotFound(err) {
		return fmt.Errorf("sqlstore: %s %q: %w", kind, key, core.ErrNotFound)
	}
	return err
}

// uniqueViolation converts driver unique-index failures into core.ErrConflict.
func uniqueViolation(kind string, err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return fmt.Errorf("sqlstore: %s already exists: %w", kind, core.ErrConflict)
	}
	return err
}
