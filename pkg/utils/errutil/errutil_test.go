package errutil_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/preparedness/pkg/utils/errutil"
	"github.com/secmon-lab/preparedness/pkg/utils/logging"
)

func TestHandle(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		gt.NoError(t, errutil.Handle(context.Background(), nil, "ignored"))
	})

	t.Run("logs goerr values and returns the error", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		base := errors.New("boom")
		err := goerr.Wrap(base, "lookup failed", goerr.V("admin_unit_id", "kingston"))

		got := errutil.Handle(ctx, err, "failed to compute recommendation")
		gt.Error(t, got).Is(base)
		gt.String(t, buf.String()).Contains("failed to compute recommendation")
		gt.String(t, buf.String()).Contains("kingston")
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		err := errors.New("plain")
		gt.Error(t, errutil.Handle(ctx, err, "oops")).Is(err)
		gt.String(t, buf.String()).Contains(`"error":"plain"`)
	})
}
