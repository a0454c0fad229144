package cli

import (
	"context"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/utils/safe"
)

const gcsScheme = "gs://"

// parseGCSPath splits gs://bucket/object into bucket and object
func parseGCSPath(dest string) (string, string, error) {
	rest, ok := strings.CutPrefix(dest, gcsScheme)
	if !ok {
		return "", "", goerr.New("not a gs:// path", goerr.V("output", dest))
	}
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", goerr.New("output must be gs://bucket/object", goerr.V("output", dest))
	}
	return bucket, object, nil
}

// writeOutput writes a rendered plan to stdout, a local file or a Cloud Storage object
func writeOutput(ctx context.Context, dest, format string, data []byte) error {
	switch {
	case dest == "" || dest == "-":
		if _, err := os.Stdout.Write(data); err != nil {
			return goerr.Wrap(err, "failed to write to stdout")
		}
		return nil

	case strings.HasPrefix(dest, gcsScheme):
		return writeGCS(ctx, dest, format, data)

	default:
		// #nosec G306 - plan output is not secret
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return goerr.Wrap(err, "failed to write output file", goerr.V("path", dest))
		}
		return nil
	}
}

func writeGCS(ctx context.Context, dest, format string, data []byte) error {
	bucket, object, err := parseGCSPath(dest)
	if err != nil {
		return err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to create storage client")
	}
	defer safe.Close(ctx, client)

	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"
	if format == "json" {
		w.ContentType = "application/json"
	}

	if _, err := w.Write(data); err != nil {
		safe.Close(ctx, w)
		return goerr.Wrap(err, "failed to write object", goerr.V("bucket", bucket), goerr.V("object", object))
	}
	// the object is committed on Close
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to commit object", goerr.V("bucket", bucket), goerr.V("object", object))
	}
	return nil
}
