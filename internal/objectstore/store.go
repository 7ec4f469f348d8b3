package objectstore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const dirPerm = 0o750

// Object describes a stored file.
type Object struct {
	// Name is the path inside the bucket.
	Name        string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// Store is the object side of the shop backend.
type Store interface {
	// Upload writes body to bucket/name, failing with ErrObjectExists if it is taken.
	Upload(ctx context.Context, bucket, name string, body io.Reader) error
	// List returns every object of bucket, nested paths included.
	List(ctx context.Context, bucket string) ([]Object, error)
	// Remove deletes the given paths and returns how many existed.
	Remove(ctx context.Context, bucket string, names ...string) (int, error)
	// PublicURL returns the URL an object is served under.
	PublicURL(bucket, name string) string
}

// FS implements Store on an afero filesystem.
type FS struct {
	fs        afero.Fs
	publicURL string
}

var _ Store = (*FS)(nil)

// New returns a store on fs. publicURL is the prefix buckets are served under.
func New(fs afero.Fs, publicURL string) *FS {
	return &FS{fs: fs, publicURL: strings.TrimRight(publicURL, "/")}
}

// NewOS returns a store rooted at the local directory root.
func NewOS(root, publicURL string) (*FS, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return New(afero.NewBasePathFs(afero.NewOsFs(), root), publicURL), nil
}

// NewMemory returns an in-memory store.
func NewMemory(publicURL string) *FS {
	return New(afero.NewMemMapFs(), publicURL)
}

// HTTPFileSystem exposes the buckets read only for static serving.
func (s *FS) HTTPFileSystem() http.FileSystem {
	return afero.NewHttpFs(afero.NewReadOnlyFs(s.fs))
}

// EnsureBucket creates the bucket directory.
func (s *FS) EnsureBucket(bucket string) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}

	return s.fs.MkdirAll("/"+bucket, dirPerm) //nolint:wrapcheck
}

// Upload implements Store.
func (s *FS) Upload(ctx context.Context, bucket, name string, body io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	p, err := objectPath(bucket, name)
	if err != nil {
		return err
	}

	if err = s.fs.MkdirAll(path.Dir(p), dirPerm); err != nil {
		return err //nolint:wrapcheck
	}

	f, err := s.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:mnd
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrObjectExists
		}

		return err //nolint:wrapcheck
	}

	_, err = io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = s.fs.Remove(p)

		return err //nolint:wrapcheck
	}

	log.Debug().Str("bucket", bucket).Str("object", name).Msg("object uploaded")

	return nil
}

// List implements Store. Objects are sorted by name.
func (s *FS) List(ctx context.Context, bucket string) ([]Object, error) {
	if err := checkBucket(bucket); err != nil {
		return nil, err
	}

	objects := []Object{}

	root := "/" + bucket

	err := afero.Walk(s.fs, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() {
			return nil
		}

		objects = append(objects, Object{
			Name:        strings.TrimPrefix(toSlash(p), root+"/"),
			Size:        info.Size(),
			ContentType: s.contentType(p),
			UpdatedAt:   info.ModTime(),
		})

		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return objects, nil
	}

	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })

	return objects, nil
}

// Remove implements Store. Missing paths are skipped.
func (s *FS) Remove(ctx context.Context, bucket string, names ...string) (int, error) {
	removed := 0

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return removed, err //nolint:wrapcheck
		}

		p, err := objectPath(bucket, name)
		if err != nil {
			return removed, err
		}

		if info, statErr := s.fs.Stat(p); statErr != nil || info.IsDir() {
			continue
		}

		if err = s.fs.Remove(p); err != nil {
			return removed, err //nolint:wrapcheck
		}

		removed++
	}

	return removed, nil
}

// PublicURL implements Store.
func (s *FS) PublicURL(bucket, name string) string {
	return s.publicURL + "/" + bucket + "/" + strings.TrimLeft(name, "/")
}

func (s *FS) contentType(p string) string {
	f, err := s.fs.Open(p)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := mimetype.DetectReader(f)
	if err != nil {
		return ""
	}

	return m.String()
}

func checkBucket(bucket string) error {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return ErrInvalidBucket
	}

	return nil
}

// objectPath returns the absolute path of name and refuses names escaping the bucket.
func objectPath(bucket, name string) (string, error) {
	if err := checkBucket(bucket); err != nil {
		return "", err
	}

	clean := path.Clean("/" + toSlash(name))
	if clean == "/" || strings.Contains(name, "..") {
		return "", ErrInvalidPath
	}

	return "/" + bucket + clean, nil
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
