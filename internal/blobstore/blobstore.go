// Package blobstore keeps uploaded invoice files out of the database. Rows
// reference blobs by opaque object key; download goes through short-lived
// HMAC-signed URLs so the file server needs no session state.
package blobstore

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/acolin/asso-ledger/internal/apperr"
)

type Store interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	SignedURL(key string, fileName string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Local stores blobs as flat files under one directory.
type Local struct {
	dir     string
	secret  []byte
	ttl     time.Duration
	baseURL string
	now     func() time.Time
}

func NewLocal(dir string, secret string, ttl time.Duration, baseURL string) (*Local, error) {
	if secret == "" {
		return nil, fmt.Errorf("blobstore: signing secret is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("blobstore: create dir: %w", err)
	}
	return &Local{
		dir:     dir,
		secret:  []byte(secret),
		ttl:     ttl,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}, nil
}

func (l *Local) path(key string) (string, error) {
	// object keys are generated uuids; anything with a separator is hostile
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: bad object key", apperr.ErrValidation)
	}
	return filepath.Join(l.dir, key), nil
}

func (l *Local) Put(ctx context.Context, key string, contentType string, data []byte) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o640)
}

func (l *Local) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := l.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: blob %s", apperr.ErrNotFound, key)
	}
	return data, err
}

func (l *Local) Delete(ctx context.Context, key string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: blob %s", apperr.ErrNotFound, key)
	}
	return err
}

// SignedURL returns a download link valid until the TTL runs out. The
// signature covers the key and the expiry, so neither can be swapped.
func (l *Local) SignedURL(key string, fileName string) (string, error) {
	if _, err := l.path(key); err != nil {
		return "", err
	}
	exp := l.now().Add(l.ttl).Unix()
	q := url.Values{}
	q.Set("exp", strconv.FormatInt(exp, 10))
	q.Set("sig", l.sign(key, exp))
	if fileName != "" {
		q.Set("name", fileName)
	}
	return fmt.Sprintf("%s/files/%s?%s", l.baseURL, url.PathEscape(key), q.Encode()), nil
}

// Verify checks a signature produced by SignedURL. The file server calls
// this before handing out bytes.
func (l *Local) Verify(key string, exp int64, sig string) error {
	if l.now().Unix() > exp {
		return fmt.Errorf("%w: download link expired", apperr.ErrPermission)
	}
	expected := l.sign(key, exp)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return fmt.Errorf("%w: bad download signature", apperr.ErrPermission)
	}
	return nil
}

func (l *Local) sign(key string, exp int64) string {
	mac := hmac.New(sha256.New, l.secret)
	fmt.Fprintf(mac, "%s|%d", key, exp)
	return hex.EncodeToString(mac.Sum(nil))
}
