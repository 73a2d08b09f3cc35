package htaccess

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

func writeRuleFile(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, Filename)
	if err := os.WriteFile(path, []byte("RewriteRule ^/a$ /b\n"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()

	writeRuleFile(t, root)
	writeRuleFile(t, filepath.Join(root, "blog"))
	writeRuleFile(t, filepath.Join(root, "blog", "archive"))
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := Find(root)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	dirs := make([]string, 0, len(files))
	for _, f := range files {
		dirs = append(dirs, filepath.ToSlash(f.Dir))
	}
	sort.Strings(dirs)

	want := []string{".", "blog", "blog/archive"}
	if len(dirs) != len(want) {
		t.Fatalf("expected %d rule files, got %v", len(want), dirs)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("expected dir %q, got %q", want[i], dirs[i])
		}
	}
}

func TestFindNoRuleFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a", "b"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := Find(root)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no rule files, got %v", files)
	}
}

func TestFindSymlinkLoop(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	root := t.TempDir()
	writeRuleFile(t, filepath.Join(root, "sub"))
	if err := os.Symlink(root, filepath.Join(root, "sub", "loop")); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	files, err := Find(root)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 rule file despite the loop, got %d", len(files))
	}
	if filepath.ToSlash(files[0].Dir) != "sub" {
		t.Errorf("unexpected dir %q", files[0].Dir)
	}
}
