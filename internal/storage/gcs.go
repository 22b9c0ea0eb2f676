// gcs.go
//
// Learning-content backend for the studyhub application
// Copyright (c) 2026 Edukita <dev@edukita.io> (https://edukita.io)
//
// This file is part of studyhub.
// studyhub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// studyhub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with studyhub.
// If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/edukita/studyhub/internal/logger"
	"github.com/edukita/studyhub/internal/types"
)

// GCS implements Store on a single Google Cloud Storage bucket.
type GCS struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
}

// NewGCS creates a GCS store for the given bucket. Credentials come from the
// application-default chain; STORAGE_EMULATOR_HOST is honored by the SDK.
func NewGCS(ctx context.Context, log *logger.Logger, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCS{
		log:    log.With("service", "gcs", "bucket", bucket),
		client: client,
		bucket: bucket,
	}, nil
}

func (g *GCS) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("%w: upload %s: %v", types.ErrUpstream, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: upload %s: %v", types.ErrUpstream, key, err)
	}
	g.log.Debug("object uploaded", "key", key)
	return nil
}

func (g *GCS) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("%w: download %s: %v", types.ErrUpstream, key, err)
	}
	return r, nil
}

func (g *GCS) Exists(ctx context.Context, key string) (bool, error) {
	_, err := g.client.Bucket(g.bucket).Object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %s: %v", types.ErrUpstream, key, err)
	}
	return true, nil
}

func (g *GCS) SignedURL(key string, ttl time.Duration) (string, error) {
	url, err := g.client.Bucket(g.bucket).SignedURL(key, &storage.SignedURLOptions{
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("%w: sign %s: %v", types.ErrUpstream, key, err)
	}
	return url, nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: delete %s: %v", types.ErrUpstream, key, err)
	}
	return nil
}

// Close releases the underlying client.
func (g *GCS) Close() error {
	return g.client.Close()
}
