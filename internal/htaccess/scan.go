package htaccess

import (
	"os"
	"path/filepath"

	"github.com/xedro98/glacier/internal/logger"
)

// Find recursively enumerates rule files under the site root. Depth is
// unbounded; symlinked directories are followed, with visited resolved
// paths tracked so a symlink loop cannot recurse forever. Unreadable
// directories are logged and skipped.
func Find(root string) ([]RuleFile, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []RuleFile
	visited := make(map[string]bool)

	var walk func(dir string)
	walk = func(dir string) {
		real, err := filepath.EvalSymlinks(dir)
		if err != nil {
			logger.Warn("skipping %s: %v", dir, err)
			return
		}
		if visited[real] {
			logger.Debug("already visited %s, skipping %s", real, dir)
			return
		}
		visited[real] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Warn("skipping unreadable directory %s: %v", dir, err)
			return
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			// follow symlinks when deciding whether to recurse
			info, err := os.Stat(path)
			if err != nil {
				logger.Warn("skipping %s: %v", path, err)
				continue
			}

			if info.IsDir() {
				walk(path)
				continue
			}

			if entry.Name() == Filename {
				rel, err := filepath.Rel(abs, dir)
				if err != nil {
					logger.Warn("skipping %s: %v", path, err)
					continue
				}
				files = append(files, RuleFile{Path: path, Dir: rel})
			}
		}
	}

	walk(abs)
	return files, nil
}
