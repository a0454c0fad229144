package safe_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/preparedness/pkg/utils/logging"
	"github.com/secmon-lab/preparedness/pkg/utils/safe"
)

type failingCloser struct{ called bool }

func (f *failingCloser) Close() error {
	f.called = true
	return errors.New("close failed")
}

func TestClose(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	c := &failingCloser{}
	safe.Close(ctx, c)
	gt.Bool(t, c.called).True()
	gt.String(t, buf.String()).Contains("close failed")

	// nil closer is ignored
	safe.Close(ctx, nil)
}
