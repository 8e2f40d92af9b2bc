// Package assets maintains the single image file owned by each entity
// instance. Files are named deterministically as kind_id.ext under a
// kind-specific directory, so the row's imgURL and the file on disk can
// always be derived from one another.
package assets

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedType is returned when an upload's extension is outside the
// allowed set. Nothing is written in that case.
var ErrUnsupportedType = errors.New("file extension not supported")

// Default asset paths served when no upload has been attached.
const (
	DefaultProfileImage = "/static/img/system/default-prof-img.png"
	DefaultLogoPNG      = "/static/img/system/logo.png"
	DefaultLogoJPG      = "/static/img/system/logo.jpg"
	DefaultLogoICO      = "/static/img/system/logo.ico"
)

// Kind identifies which entity family owns an asset.
type Kind string

const (
	KindAdmin   Kind = "admin"
	KindStudent Kind = "student"
)

// dir returns the directory name for the kind under the db image root.
func (k Kind) dir() string {
	return string(k) + "s"
}

// The extension check is deliberately case-sensitive, matching the stored
// file names exactly.
var allowedImageExts = map[string]bool{
	"png": true, "PNG": true,
	"jpg": true, "JPG": true,
	"jpeg": true, "JPEG": true,
}

// ico is accepted only for the system branding assets.
var allowedBrandingExts = map[string]bool{
	"png": true, "PNG": true,
	"jpg": true, "JPG": true,
	"jpeg": true, "JPEG": true,
	"ico": true, "ICO": true,
}

// SaveFunc persists an uploaded file to the given path. fiber's
// (*Ctx).SaveFile satisfies it.
type SaveFunc func(fh *multipart.FileHeader, path string) error

// Manager owns the image tree rooted at Root (the static img directory).
// It applies no locking of its own: two concurrent replaces of the same
// entity interleave as last-write-wins, acceptable under the single
// interactive writer this system assumes.
type Manager struct {
	Root string
}

// New returns a Manager rooted at the static image directory.
func New(root string) *Manager {
	return &Manager{Root: root}
}

// Ext returns the extension of an uploaded filename, or "" when it has none.
func Ext(filename string) string {
	if !strings.Contains(filename, ".") {
		return ""
	}
	parts := strings.Split(filename, ".")
	return parts[len(parts)-1]
}

// AllowedImage reports whether filename carries an allowed entity-image
// extension.
func AllowedImage(filename string) bool {
	return allowedImageExts[Ext(filename)]
}

// AllowedBranding reports whether filename is acceptable as a branding asset.
func AllowedBranding(filename string) bool {
	return allowedBrandingExts[Ext(filename)]
}

// Attach writes a freshly uploaded image for a newly created entity and
// returns its public URL. The caller must already hold the generated identity,
// so Attach necessarily runs after the row insert.
func (m *Manager) Attach(kind Kind, id int64, fh *multipart.FileHeader, save SaveFunc) (string, error) {
	ext := Ext(fh.Filename)
	if !allowedImageExts[ext] {
		return "", ErrUnsupportedType
	}

	name := fmt.Sprintf("%s_%d.%s", kind, id, ext)
	dir := filepath.Join(m.Root, "db", kind.dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create asset directory: %w", err)
	}
	if err := save(fh, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save asset: %w", err)
	}
	return "/static/img/db/" + kind.dir() + "/" + name, nil
}

// Replace swaps the entity's image for a new upload, removing the old file
// first. The removal uses the extension recovered from currentURL while the
// write uses the upload's own extension, so the two may differ.
func (m *Manager) Replace(kind Kind, id int64, currentURL string, fh *multipart.FileHeader, save SaveFunc) (string, error) {
	if !AllowedImage(fh.Filename) {
		return "", ErrUnsupportedType
	}
	m.Remove(kind, id, currentURL)
	return m.Attach(kind, id, fh, save)
}

// Remove deletes the entity's image file if one exists. Removal is advisory:
// a missing file or a filesystem failure never blocks the record operation,
// so the error is logged and swallowed.
func (m *Manager) Remove(kind Kind, id int64, currentURL string) {
	ext := Ext(currentURL)
	if ext == "" {
		return
	}
	name := fmt.Sprintf("%s_%d.%s", kind, id, ext)
	removeBestEffort(filepath.Join(m.Root, "db", kind.dir(), name))
}

// SaveBranding writes one of the three system branding assets, named by its
// fixed logical name plus the uploaded extension, and returns the public URL.
func (m *Manager) SaveBranding(fh *multipart.FileHeader, save SaveFunc) (string, error) {
	ext := Ext(fh.Filename)
	if !allowedBrandingExts[ext] {
		return "", ErrUnsupportedType
	}

	name := "logo." + ext
	dir := filepath.Join(m.Root, "system")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create system asset directory: %w", err)
	}
	if err := save(fh, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save branding asset: %w", err)
	}
	return "/static/img/system/" + name, nil
}

// removeBestEffort deletes path, tolerating a file that is already gone.
// Other failures are logged so an accidental silent failure stays visible,
// but never surfaced to the caller.
func removeBestEffort(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("best-effort asset removal of %s failed: %v", path, err)
	}
}
