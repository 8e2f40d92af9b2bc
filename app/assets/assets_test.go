package assets

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
)

// writeStub stands in for fiber's SaveFile: it writes a marker file at the
// requested path.
func writeStub(t *testing.T) SaveFunc {
	t.Helper()
	return func(fh *multipart.FileHeader, path string) error {
		return os.WriteFile(path, []byte(fh.Filename), 0o644)
	}
}

func header(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 1}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestAttachWritesDeterministicName(t *testing.T) {
	root := t.TempDir()
	m := New(root)

	url, err := m.Attach(KindStudent, 7, header("photo.png"), writeStub(t))
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if url != "/static/img/db/students/student_7.png" {
		t.Fatalf("url = %q", url)
	}
	if _, err := os.Stat(filepath.Join(root, "db", "students", "student_7.png")); err != nil {
		t.Fatalf("file not written: %v", err)
	}
}

func TestAttachRejectsUnsupportedExtension(t *testing.T) {
	root := t.TempDir()
	m := New(root)

	for _, name := range []string{"notes.txt", "photo.Png", "photo", "archive.tar.gz"} {
		_, err := m.Attach(KindStudent, 1, header(name), writeStub(t))
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("%s: err = %v, want ErrUnsupportedType", name, err)
		}
	}
	if got := listDir(t, filepath.Join(root, "db", "students")); len(got) != 0 {
		t.Fatalf("rejected upload left files behind: %v", got)
	}
}

func TestReplaceWithDifferentExtensionLeavesOneFile(t *testing.T) {
	root := t.TempDir()
	m := New(root)

	if _, err := m.Attach(KindAdmin, 3, header("old.jpg"), writeStub(t)); err != nil {
		t.Fatalf("attach: %v", err)
	}

	url, err := m.Replace(KindAdmin, 3, "/static/img/db/admins/admin_3.jpg", header("new.PNG"), writeStub(t))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if url != "/static/img/db/admins/admin_3.PNG" {
		t.Fatalf("url = %q", url)
	}

	files := listDir(t, filepath.Join(root, "db", "admins"))
	if len(files) != 1 || files[0] != "admin_3.PNG" {
		t.Fatalf("files = %v, want exactly [admin_3.PNG]", files)
	}
}

func TestReplaceToleratesMissingOldFile(t *testing.T) {
	root := t.TempDir()
	m := New(root)

	url, err := m.Replace(KindAdmin, 9, "/static/img/db/admins/admin_9.jpeg", header("new.jpg"), writeStub(t))
	if err != nil {
		t.Fatalf("replace with no prior file: %v", err)
	}
	if url != "/static/img/db/admins/admin_9.jpg" {
		t.Fatalf("url = %q", url)
	}
}

func TestRemoveIsBestEffort(t *testing.T) {
	root := t.TempDir()
	m := New(root)

	// Missing file: must not panic or error.
	m.Remove(KindStudent, 5, "/static/img/db/students/student_5.png")

	// Default image URL carries an extension but no per-entity file; still a
	// no-op.
	m.Remove(KindStudent, 5, DefaultProfileImage)

	// Present file is deleted.
	if _, err := m.Attach(KindStudent, 5, header("photo.png"), writeStub(t)); err != nil {
		t.Fatalf("attach: %v", err)
	}
	m.Remove(KindStudent, 5, "/static/img/db/students/student_5.png")
	if files := listDir(t, filepath.Join(root, "db", "students")); len(files) != 0 {
		t.Fatalf("files = %v, want none", files)
	}
}

func TestSaveBrandingAcceptsIco(t *testing.T) {
	root := t.TempDir()
	m := New(root)

	url, err := m.SaveBranding(header("favicon.ico"), writeStub(t))
	if err != nil {
		t.Fatalf("save branding: %v", err)
	}
	if url != "/static/img/system/logo.ico" {
		t.Fatalf("url = %q", url)
	}
	if _, err := os.Stat(filepath.Join(root, "system", "logo.ico")); err != nil {
		t.Fatalf("branding file not written: %v", err)
	}
}

func TestIcoRejectedForEntityImages(t *testing.T) {
	m := New(t.TempDir())
	_, err := m.Attach(KindAdmin, 1, header("favicon.ico"), writeStub(t))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestExtIsCaseSensitiveAndLastSegment(t *testing.T) {
	tests := []struct {
		name    string
		allowed bool
	}{
		{"a.png", true}, {"a.PNG", true}, {"a.jpg", true}, {"a.JPG", true},
		{"a.jpeg", true}, {"a.JPEG", true},
		{"a.Png", false}, {"a.pNG", false}, {"a.gif", false}, {"a", false},
		{"a.tar.jpg", true},
	}
	for _, tt := range tests {
		if got := AllowedImage(tt.name); got != tt.allowed {
			t.Errorf("AllowedImage(%q) = %v, want %v", tt.name, got, tt.allowed)
		}
	}
}
