package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID       string   `db:"id"`
	Name     string   `db:"name"`
	Score    *float64 `db:"score"`
	Ignored  string   `db:"-"`
	Untagged string
	hidden   string `db:"hidden"`
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "score"}, Columns(row{}))
	assert.Equal(t, []string{"id", "name", "score"}, Columns(&row{}))
}

func TestColumnValues(t *testing.T) {
	r := &row{ID: "a", Name: "b", Score: Ptr(4.5), Ignored: "x", Untagged: "y", hidden: "z"}

	values := ColumnValues(r)
	assert.Len(t, values, 3)
	assert.Equal(t, "a", values["id"])
	assert.Equal(t, "b", values["name"])
	assert.Equal(t, r.Score, values["score"])
}

func TestColumns_PanicsOnNonStruct(t *testing.T) {
	assert.Panics(t, func() { Columns(42) })
}
