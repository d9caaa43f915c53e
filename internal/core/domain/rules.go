package domain

import (
	"path/filepath"
	"sort"
	"strings"
)

// CategoryOther is the fallback category for files whose extension
// matches no rule. It always exists and cannot be removed.
const CategoryOther = "Others"

// RuleSet maps file extensions to category names.
// Extensions are stored lowercase with a leading dot.
type RuleSet struct {
	byExt map[string]string
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{byExt: make(map[string]string)}
}

// DefaultRules returns the built-in extension mapping.
func DefaultRules() *RuleSet {
	defaults := map[string][]string{
		"Images":      {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".ico", ".tiff"},
		"Videos":      {".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpg", ".mpeg"},
		"Documents":   {".pdf", ".doc", ".docx", ".txt", ".odt", ".xls", ".xlsx", ".ppt", ".pptx"},
		"Music":       {".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a", ".opus"},
		"Archives":    {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz"},
		"Code":        {".py", ".go", ".js", ".html", ".css", ".cpp", ".java", ".c", ".h", ".sh", ".json", ".xml", ".sql"},
		"Executables": {".exe", ".msi", ".app", ".deb", ".rpm"},
		"Data":        {".csv", ".db", ".sqlite", ".yaml", ".toml"},
	}

	rs := NewRuleSet()
	for category, exts := range defaults {
		for _, ext := range exts {
			rs.byExt[ext] = category
		}
	}
	return rs
}

// NormalizeExt converts an extension to canonical form:
// lowercase with a single leading dot. Returns empty string
// for input that is not a valid extension.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext == "." || strings.Contains(ext[1:], ".") {
		return ""
	}
	return ext
}

// Categorize returns the category for a filename based on its extension.
// Files with no matching rule fall into CategoryOther.
func (r *RuleSet) Categorize(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if category, ok := r.byExt[ext]; ok {
		return category
	}
	return CategoryOther
}

// Set assigns an extension to a category. An existing assignment
// for the extension is replaced.
func (r *RuleSet) Set(ext, category string) error {
	normalized := NormalizeExt(ext)
	if normalized == "" {
		return ErrInvalidInput
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrInvalidInput
	}
	r.byExt[normalized] = category
	return nil
}

// Remove deletes an extension rule.
// Returns ErrNotFound if the extension has no rule.
func (r *RuleSet) Remove(ext string) error {
	normalized := NormalizeExt(ext)
	if normalized == "" {
		return ErrInvalidInput
	}
	if _, ok := r.byExt[normalized]; !ok {
		return ErrNotFound
	}
	delete(r.byExt, normalized)
	return nil
}

// Lookup returns the category for an extension and whether a rule exists.
func (r *RuleSet) Lookup(ext string) (string, bool) {
	category, ok := r.byExt[NormalizeExt(ext)]
	return category, ok
}

// Categories returns all category names in sorted order.
// CategoryOther is not included as it has no extension rules.
func (r *RuleSet) Categories() []string {
	seen := make(map[string]bool)
	for _, category := range r.byExt {
		seen[category] = true
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Extensions returns the sorted extensions assigned to a category.
func (r *RuleSet) Extensions(category string) []string {
	var exts []string
	for ext, cat := range r.byExt {
		if cat == category {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Len returns the number of extension rules.
func (r *RuleSet) Len() int {
	return len(r.byExt)
}
