package editsession

import (
	"testing"
	"time"

	"notefiber-editor/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	v, err := ParseValue(FieldDate, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, v.(time.Time).Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	v, err = ParseValue(FieldDate, "2024-01-01T09:00:00+07:00")
	require.NoError(t, err)
	assert.True(t, v.(time.Time).Equal(time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)))

	_, err = ParseValue(FieldDate, "01/02/2024")
	assert.Error(t, err)

	v, err = ParseValue(FieldShowCallToAction, "true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = ParseValue(FieldShowCallToAction, "yes please")
	assert.Error(t, err)

	v, err = ParseValue(FieldTitle, "  keep spaces ")
	require.NoError(t, err)
	assert.Equal(t, "  keep spaces ", v)

	_, err = ParseValue("subtitle", "x")
	assert.Error(t, err)
}

func TestAssignAndValueAgree(t *testing.T) {
	var n entity.Note
	samples := map[Field]any{
		FieldTitle:            "A",
		FieldDescription:      "B",
		FieldDate:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FieldButtonContent:    "Go",
		FieldButtonUrl:        "https://example.com",
		FieldShowCallToAction: true,
	}
	for f, v := range samples {
		require.True(t, assign(&n, f, v))
		got, ok := Value(n, f)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}

	_, ok := Value(n, "subtitle")
	assert.False(t, ok)
}
