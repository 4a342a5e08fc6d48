package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"empty directory", 0, 10, 0},
		{"exactly one page", 10, 10, 1},
		{"partial last page", 12, 10, 2},
		{"one over a boundary", 11, 10, 2},
		{"single row", 1, 100, 1},
		{"many full pages", 100, 10, 10},
		{"small page size", 7, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageCount(tt.total, tt.limit))
		})
	}
}
