package workspace

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultCategory is used when a path gives no usable category.
const DefaultCategory = "general"

// Categories is the fixed vocabulary the server accepts.
var Categories = mapset.NewSet(
	"architecture",
	"stack",
	"testing",
	"deployment",
	"security",
	"style",
	"dependencies",
	"error_handling",
	"business_logic",
	DefaultCategory,
)

func IsValidCategory(category string) bool {
	return Categories.Contains(category)
}

// CategoryList returns the vocabulary as a sorted, comma-separated string
// for error messages.
func CategoryList() string {
	cats := Categories.ToSlice()
	sort.Strings(cats)
	return strings.Join(cats, ", ")
}

// CategoryForPath infers a document's category from its workspace-relative
// path. A non-empty override wins unconditionally. Otherwise the first
// directory under knowledge/ names the category; files directly under
// knowledge/ or under an unknown directory fall back to DefaultCategory.
func CategoryForPath(relPath string, override string) string {
	if override != "" {
		return override
	}

	parts := strings.Split(NormPath(relPath), "/")
	if len(parts) > 0 && parts[0] == KnowledgeDirName {
		parts = parts[1:]
	}
	if len(parts) < 2 {
		return DefaultCategory
	}
	if !IsValidCategory(parts[0]) {
		return DefaultCategory
	}
	return parts[0]
}
