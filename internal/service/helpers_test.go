package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vbonduro/trailplan/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestCatalog(t *testing.T) *catalog.Live {
	t.Helper()
	c, err := catalog.Load("../catalog/testdata")
	require.NoError(t, err)
	return catalog.Static(c)
}

// brokenStore fails every read and, when failSet is set, every write.
type brokenStore struct {
	failSet bool
	sets    int
}

var errBroken = errors.New("storage unavailable")

func (b *brokenStore) Get(context.Context, string, string) ([]byte, error) {
	return nil, errBroken
}

func (b *brokenStore) Set(context.Context, string, string, []byte) error {
	b.sets++
	if b.failSet {
		return errBroken
	}
	return nil
}
