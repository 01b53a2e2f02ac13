package helper

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// --- PG error mapping ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

// MapPGError memetakan error driver ke status HTTP.
// 23P01 = exclusion_violation, 23503 = foreign_key_violation, 23505 = unique_violation
func MapPGError(err error) (int, string) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusConflict, "Data duplikat (unique violation)."
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23P01":
			return http.StatusConflict, "Bentrok jadwal (exclusion violation)."
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		case "23505":
			return http.StatusConflict, "Data duplikat (unique violation)."
		}
	}
	return http.StatusInternalServerError, "internal store error"
}

// IsUniqueViolation true untuk duplicate key dari driver mana pun.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
