// internal/utils/pagination.go
package utils

import (
	"math"    // Untuk math.Ceil saat menghitung total halaman.
	"strconv" // Untuk konversi query parameter string ke integer.

	"github.com/gofiber/fiber/v2"
	zlog "github.com/rs/zerolog/log"
)

// File ini berisi utilitas pagination untuk response API
// (dipakai oleh endpoint riwayat transaksi poin).

// Nilai default dan batasan parameter pagination.
const (
	DefaultPage  = 1   // Halaman default jika query 'page' tidak ada/tidak valid.
	DefaultLimit = 10  // Jumlah item default per halaman.
	MaxLimit     = 100 // Batas maksimum item per halaman.
)

// PaginationQuery menampung parameter pagination yang sudah divalidasi dari
// query string, siap dipakai untuk klausa LIMIT dan OFFSET.
type PaginationQuery struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePaginationParams membaca dan memvalidasi parameter 'page' dan 'limit'
// dari query string request Fiber. Nilai tidak valid jatuh ke default, dan
// 'limit' dibatasi oleh MaxLimit.
func ParsePaginationParams(c *fiber.Ctx) PaginationQuery {
	pageStr := c.Query("page", strconv.Itoa(DefaultPage))
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		if pageStr != strconv.Itoa(DefaultPage) {
			zlog.Warn().Str("query_param", "page").Str("value", pageStr).Int("default", DefaultPage).Msg("Invalid 'page' query parameter, using default")
		}
		page = DefaultPage
	}

	limitStr := c.Query("limit", strconv.Itoa(DefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		if limitStr != strconv.Itoa(DefaultLimit) {
			zlog.Warn().Str("query_param", "limit").Str("value", limitStr).Int("default", DefaultLimit).Msg("Invalid 'limit' query parameter, using default")
		}
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		zlog.Warn().Int("requested_limit", limit).Int("max_limit", MaxLimit).Msg("Requested 'limit' exceeds maximum allowed, capping to max limit")
		limit = MaxLimit
	}

	return PaginationQuery{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// PaginationMeta berisi metadata halaman yang dikirim bersama data, supaya
// frontend bisa membangun kontrol navigasi halaman.
type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// BuildPaginationMeta menghitung metadata pagination dari total item, limit,
// dan halaman saat ini.
func BuildPaginationMeta(totalItems, limit, page int) PaginationMeta {
	totalPages := 0
	if totalItems > 0 && limit > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(limit)))
	}

	// Jaga konsistensi metadata saat halaman yang diminta melewati batas.
	currentPage := page
	if currentPage > totalPages && totalPages > 0 {
		currentPage = totalPages
	} else if totalPages == 0 && currentPage > 1 {
		currentPage = 1
	}

	return PaginationMeta{
		CurrentPage: currentPage,
		PerPage:     limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}
}

// PaginatedResponse membungkus data terpaginasi beserta metadatanya dalam
// format response JSON standar aplikasi.
type PaginatedResponse[T any] struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    []T            `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

// NewPaginatedResponse adalah konstruktor ringkas untuk PaginatedResponse[T].
func NewPaginatedResponse[T any](message string, data []T, meta PaginationMeta) PaginatedResponse[T] {
	if data == nil {
		// Slice kosong, bukan nil, supaya JSON menghasilkan [] dan bukan null.
		data = make([]T, 0)
	}
	return PaginatedResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	}
}

// PaginatedResponseGeneric dipakai KHUSUS untuk dokumentasi Swagger (yang
// tidak mendukung generics Go). Jangan pakai struct ini di kode aktual.
type PaginatedResponseGeneric struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    []interface{}  `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}
