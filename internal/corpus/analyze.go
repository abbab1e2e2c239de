package corpus

import (
	"fmt"
	"os"
	"path/filepath"
)

// Stats summarizes the corpus before a run: how much exists versus how
// much the current start-year filter would touch.
type Stats struct {
	TotalYears     int
	TotalFiles     int
	YearsToProcess int
	FilesToProcess int
}

// Analyze counts record files per year partition without opening any of
// them.
func Analyze(root string, startYear int) (Stats, error) {
	dir, err := cvesRoot(root)
	if err != nil {
		return Stats{}, err
	}

	yearDirs, err := os.ReadDir(dir)
	if err != nil {
		return Stats{}, fmt.Errorf("cannot read corpus directory %s: %w", dir, err)
	}

	var stats Stats
	for _, yearDir := range yearDirs {
		if !yearDir.IsDir() {
			continue
		}
		year, ok := parseYear(yearDir.Name())
		if !ok {
			continue
		}
		stats.TotalYears++

		files := countRecordFiles(filepath.Join(dir, yearDir.Name()))
		stats.TotalFiles += files

		if year >= startYear {
			stats.YearsToProcess++
			stats.FilesToProcess += files
		}
	}
	return stats, nil
}

func countRecordFiles(yearPath string) int {
	rangeDirs, err := os.ReadDir(yearPath)
	if err != nil {
		return 0
	}
	count := 0
	for _, rangeDir := range rangeDirs {
		if !rangeDir.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(yearPath, rangeDir.Name()))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && isRecordFile(entry.Name()) {
				count++
			}
		}
	}
	return count
}
