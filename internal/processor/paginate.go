package processor

import "github.com/yourusername/assesshub-api/internal/model"

const DefaultPerPage = 20

// Paginate slices one page out of records. Pages are 1-based; out-of-range
// pages yield an empty slice. perPage <= 0 falls back to DefaultPerPage.
func Paginate[T any](records []T, page, perPage int) ([]T, model.Pagination) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page <= 0 {
		page = 1
	}

	total := len(records)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return records[start:end], model.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
