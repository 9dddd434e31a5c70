package jsonldb

import (
	"strconv"
	"strings"
)

// Key addresses a row either by its numeric id or by its business code.
type Key struct {
	ID   int64
	Code string
}

// ByID returns a key matching the row with the given id.
func ByID(id int64) Key {
	return Key{ID: id}
}

// ByCode returns a key matching rows whose code equals code, ignoring case.
func ByCode(code string) Key {
	return Key{Code: code}
}

// IsZero returns true if the key addresses nothing.
func (k Key) IsZero() bool {
	return k.ID <= 0 && strings.TrimSpace(k.Code) == ""
}

// IsCode returns true if the key addresses by code.
func (k Key) IsCode() bool {
	return k.ID <= 0
}

// Matches reports whether a row with the given id and code is addressed by k.
func (k Key) Matches(id int64, code string) bool {
	if k.ID > 0 {
		return id == k.ID
	}
	return k.Code != "" && strings.EqualFold(code, k.Code)
}

func (k Key) String() string {
	if k.ID > 0 {
		return "id " + strconv.FormatInt(k.ID, 10)
	}
	return "code " + strconv.Quote(k.Code)
}
