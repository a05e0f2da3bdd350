package regions

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var pageFileName = regexp.MustCompile(`^(.+)_page(\d+)\.json$`)

// FileName returns the conventional region file name for a page of a PDF:
// "<pdf base name>_page<N>.json".
func FileName(pdfPath string, page int) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return fmt.Sprintf("%s_page%d.json", base, page)
}

// FindFile returns the region file for a page of pdfPath inside dir, if
// one exists.
func FindFile(dir, pdfPath string, page int) (string, bool) {
	if dir == "" {
		return "", false
	}
	candidate := filepath.Join(dir, FileName(pdfPath, page))
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, true
	}
	return "", false
}

// PageFile is a region file for one page
type PageFile struct {
	Page int
	Path string
}

// Group collects the region files of one PDF, pages ascending
type Group struct {
	PDF   string // PDF base name without extension
	Files []PageFile
}

// ScanDir finds every "<pdf>_page<N>.json" file in dir and groups them by
// PDF name. Groups are sorted by name.
func ScanDir(dir string) ([]Group, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading region directory: %w", err)
	}

	byPDF := make(map[string][]PageFile)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := pageFileName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		page, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		byPDF[m[1]] = append(byPDF[m[1]], PageFile{Page: page, Path: filepath.Join(dir, e.Name())})
	}

	groups := make([]Group, 0, len(byPDF))
	for name, files := range byPDF {
		sort.Slice(files, func(i, j int) bool { return files[i].Page < files[j].Page })
		groups = append(groups, Group{PDF: name, Files: files})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].PDF < groups[j].PDF })
	return groups, nil
}
