package callback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "opt_1", Clean("\fopt_1"))
	assert.Equal(t, "bilet_2", Clean(" \\fbilet_2 "))
	assert.Equal(t, "solve_ticket", Clean("solve_ticket"))
}

// TestParseInt проверяет разбор номера из данных кнопки
func TestParseInt(t *testing.T) {
	n, err := ParseInt("\fbilet_12", "bilet_")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n, err = ParseInt("\fopt_3|extra", "opt_")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseInt("solve_ticket", "solve_")
	assert.Error(t, err)

	_, err = ParseInt("opt_1", "bilet_")
	assert.Error(t, err)
}

func TestPayload(t *testing.T) {
	assert.Equal(t, "6f1c", Payload("\fopt_2|6f1c"))
	assert.Equal(t, "", Payload("\fopt_2"))
	assert.Equal(t, "", Payload("opt_2|"))
}
