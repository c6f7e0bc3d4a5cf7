package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(squirrel.Eq{"status": "PENDING"}).
		Where(squirrel.Eq{"customer_id": "c"}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM bookings WHERE status = $1 AND customer_id = $2", query)
	assert.Equal(t, []interface{}{"PENDING", "c"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Update("bookings").Set("status", "CONFIRMED").Where(squirrel.Eq{"id": "x"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE id = $2", query)
}
