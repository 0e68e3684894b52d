package converting_test

import (
	"testing"

	"github.com/almoelda/restful-booker-automation/internal/tools/converting"
	"github.com/stretchr/testify/assert"
)

func TestUnwrap(t *testing.T) {
	value := 42

	assert.Equal(t, 42, converting.Unwrap(&value))
	assert.Equal(t, 0, converting.Unwrap[int](nil))
	assert.Equal(t, "", converting.Unwrap[string](nil))
}

func TestPointerToValue(t *testing.T) {
	pointer := converting.PointerToValue("deposit")

	assert.NotNil(t, pointer)
	assert.Equal(t, "deposit", *pointer)
}
