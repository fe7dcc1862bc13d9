package services

import (
	"sort"

	"github.com/conduitapp/conduit/internal/models"
	"gorm.io/gorm"
)

// ListTags returns the distinct union of every article's tag list. Tags are
// not stored as an entity of their own; the index is derived on demand.
func ListTags(db *gorm.DB) ([]string, error) {
	var tagColumns []models.JSON
	if err := db.Model(&models.Article{}).Pluck("tag_list", &tagColumns).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	tags := []string{}
	for _, column := range tagColumns {
		for _, tag := range column.StringList() {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	sort.Strings(tags)
	return tags, nil
}
