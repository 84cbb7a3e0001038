package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_DollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("rooms").
		Where(squirrel.Eq{"category_id": 3}).
		Where(squirrel.NotEq{"status": "out_of_order"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM rooms WHERE category_id = $1 AND status <> $2", query)
	assert.Equal(t, []interface{}{3, "out_of_order"}, args)
}

func TestUpdate_DollarPlaceholders(t *testing.T) {
	query, args, err := Update("stay_details").
		Set("room_id", nil).
		Where(squirrel.Eq{"booking_id": int64(9)}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE stay_details SET room_id = $1 WHERE booking_id = $2", query)
	assert.Len(t, args, 2)
}
