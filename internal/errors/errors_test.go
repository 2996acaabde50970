package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation",
			err:  NewError("bad input").WithHint("Bad input").Mark(ErrValidation),
			want: http.StatusBadRequest,
		},
		{
			name: "not found",
			err:  NewError("missing").Mark(ErrNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "parse",
			err:  WithError(errors.New("unexpected end of JSON input")).Mark(ErrParse),
			want: http.StatusBadRequest,
		},
		{
			name: "database",
			err:  NewError("connection refused").Mark(ErrDatabase),
			want: http.StatusInternalServerError,
		},
		{
			name: "unmarked",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestBuilderKeepsHintsAndMarks(t *testing.T) {
	err := NewErrorf("variant %s not found", "gid://shopify/ProductVariant/1").
		WithHint("Variant not found").
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, errors.GetAllHints(err), "Variant not found")
	assert.Equal(t, "variant gid://shopify/ProductVariant/1 not found", err.Error())
}
