package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := map[string]string{
		"juan":             "Juan",
		"JUAN dela  CRUZ":  "Juan Dela Cruz",
		"  maria santos  ": "Maria Santos",
		"":                 "",
		"quezon city":      "Quezon City",
	}
	for in, want := range tests {
		require.Equal(t, want, Name(in), "input %q", in)
	}
}

func TestEmailAndPhone(t *testing.T) {
	require.Equal(t, "lisa.garcia@email.com", Email(" Lisa.Garcia@Email.COM "))
	require.Equal(t, "6321234567", Phone("+63 (2) 123-4567"))
	require.Empty(t, Phone(""))
}

func TestValidEmail(t *testing.T) {
	require.True(t, ValidEmail("a@b.co"))
	require.True(t, ValidEmail("first.last@sub.domain.ph"))
	require.False(t, ValidEmail("no-at-sign.com"))
	require.False(t, ValidEmail("user@nodot"))
	require.False(t, ValidEmail("sp ace@x.com"))
	require.False(t, ValidEmail(""))
}

func TestOptional(t *testing.T) {
	require.Nil(t, Optional(""))
	require.Equal(t, "x", *Optional("x"))
}
