// Package corpus enumerates CVE record files under the cvelistV5
// year-partitioned directory layout.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/recon-agent/cvekb/pkg/logger"
)

// Year partitions outside this range are treated as stray directories
// and skipped, same as non-numeric names.
const (
	minSaneYear = 1999
	maxSaneYear = 2100
)

// Walker yields record file paths in lexicographic order. Enumeration
// is deterministic and restartable from scratch; nothing is cached
// between runs.
type Walker struct {
	root      string
	startYear int
	maxFiles  int // 0 means unlimited
}

func NewWalker(root string, startYear, maxFiles int) *Walker {
	return &Walker{root: root, startYear: startYear, maxFiles: maxFiles}
}

// Walk calls visit for each candidate file until the tree is exhausted,
// the file cap is reached, or visit returns false. Unreadable
// subdirectories are logged and skipped; only an unreadable root is an
// error.
func (w *Walker) Walk(visit func(path string) bool) error {
	root, err := cvesRoot(w.root)
	if err != nil {
		return err
	}

	yearDirs, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("cannot read corpus directory %s: %w", root, err)
	}

	yielded := 0
	for _, yearDir := range yearDirs {
		if !yearDir.IsDir() {
			continue
		}
		year, ok := parseYear(yearDir.Name())
		if !ok || year < w.startYear {
			continue
		}

		yearPath := filepath.Join(root, yearDir.Name())
		rangeDirs, err := os.ReadDir(yearPath)
		if err != nil {
			logger.Warn("skipping unreadable year directory",
				zap.String("path", yearPath), zap.Error(err))
			continue
		}

		for _, rangeDir := range rangeDirs {
			if !rangeDir.IsDir() {
				continue
			}
			rangePath := filepath.Join(yearPath, rangeDir.Name())
			entries, err := os.ReadDir(rangePath)
			if err != nil {
				logger.Warn("skipping unreadable range directory",
					zap.String("path", rangePath), zap.Error(err))
				continue
			}

			for _, entry := range entries {
				if entry.IsDir() || !isRecordFile(entry.Name()) {
					continue
				}
				if !visit(filepath.Join(rangePath, entry.Name())) {
					return nil
				}
				yielded++
				if w.maxFiles > 0 && yielded >= w.maxFiles {
					return nil
				}
			}
		}
	}
	return nil
}

// cvesRoot resolves the directory holding year partitions: a checkout
// of cvelistV5 keeps them under a "cves" subdirectory, but a bare tree
// of year directories works too.
func cvesRoot(root string) (string, error) {
	nested := filepath.Join(root, "cves")
	if info, err := os.Stat(nested); err == nil && info.IsDir() {
		return nested, nil
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("corpus directory %s not found: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("corpus path %s is not a directory", root)
	}
	return root, nil
}

func parseYear(name string) (int, bool) {
	year, err := strconv.Atoi(name)
	if err != nil || year < minSaneYear || year > maxSaneYear {
		return 0, false
	}
	return year, true
}

func isRecordFile(name string) bool {
	return strings.HasPrefix(name, "CVE-") && strings.HasSuffix(name, ".json")
}
