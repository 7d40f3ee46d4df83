package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaError(t *testing.T) {
	err := fmt.Errorf("load table: %w", &SchemaError{Missing: []string{"Rating", "Date"}})

	assert.True(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "Rating, Date")

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"Rating", "Date"}, schemaErr.Missing)
}

func TestCategoryErrors(t *testing.T) {
	dup := &DuplicateCategoryError{Name: "Kids"}
	assert.True(t, errors.Is(dup, ErrDuplicateEntry))
	assert.Equal(t, `category "Kids" already exists`, dup.Error())

	missing := NewNotFound("category", "Pets")
	assert.True(t, errors.Is(missing, ErrNotFound))
	assert.False(t, errors.Is(missing, ErrDuplicateEntry))
	assert.Equal(t, `category "Pets" not found`, missing.Error())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "user error",
			err:  NewUserError("could not open file", errors.New("permission denied")),
			want: "could not open file",
		},
		{
			name: "schema error",
			err:  fmt.Errorf("wrapped: %w", &SchemaError{Missing: []string{"ID"}}),
			want: "the file is missing required columns: ID",
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestSetupLoggerTo(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, "debug", "json"))

	LogDebug("row degraded", Fields{"row": 3})
	assert.Contains(t, buf.String(), `"row":3`)

	assert.ErrorIs(t, SetupLoggerTo(&buf, "loud", "json"), ErrInvalidConfig)
	assert.ErrorIs(t, SetupLoggerTo(&buf, "info", "xml"), ErrInvalidConfig)
}
