package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"efgportal/internal/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	plain := errors.New("syntax error")
	tests := []struct {
		name  string
		in    error
		errIs error
	}{
		{"no rows", sql.ErrNoRows, domain.ErrNotFound},
		{"bad conn", driver.ErrBadConn, domain.ErrTransport},
		{"conn done", fmt.Errorf("query: %w", sql.ErrConnDone), domain.ErrTransport},
		{"deadline", context.DeadlineExceeded, domain.ErrTransport},
		{"pq connection failure", &pq.Error{Code: "08006"}, domain.ErrTransport},
		{"pq admin shutdown", &pq.Error{Code: "57P01"}, domain.ErrTransport},
		{"other", plain, plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.in), tt.errIs)
		})
	}
	assert.NoError(t, classify(nil))
	assert.NotErrorIs(t, classify(&pq.Error{Code: "23505"}), domain.ErrTransport)
}
