package web

import (
	"encoding/json"
	"html/template"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/web/handler/admin/media"
)

// TemplateFuncs are the helpers available in every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"iterate": func(count int) []int {
			result := make([]int, count)
			for i := range result {
				result[i] = i
			}

			return result
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"formatPrice":   catalog.FormatPrice,
		"formatNumber":  catalog.FormatNumber,
		"formatSize":    media.FormatSize,
		"categoryClass": CategoryClass,
		"json": func(v any) string {
			b, err := json.Marshal(v)
			if err != nil {
				return ""
			}

			return string(b)
		},
	}
}

// CategoryClass is the CSS class of a category badge. Unknown colors use
// the default color.
func CategoryClass(color string) string {
	if !models.IsCategoryColor(color) {
		color = models.DefaultCategoryColor
	}

	return "cat-" + color
}
