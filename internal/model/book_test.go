package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The repositories rely on plain equality and GROUP BY being case-sensitive,
// which only holds while these columns keep their binary collation.
func TestBook_TextColumnsUseBinaryCollation(t *testing.T) {
	typ := reflect.TypeOf(Book{})

	for _, name := range []string{"Title", "Author", "Genre", "Status"} {
		field, ok := typ.FieldByName(name)
		assert.True(t, ok, name)
		assert.Contains(t, field.Tag.Get("gorm"), "COLLATE utf8mb4_bin", name)
	}
}
