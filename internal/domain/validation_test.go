package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	require.True(t, ValidEmail("user@example.com"))
	require.True(t, ValidEmail("a.b+c@sub.domain.io"))

	require.False(t, ValidEmail(""))
	require.False(t, ValidEmail("no-at.example.com"))
	require.False(t, ValidEmail("user@nodot"))
	require.False(t, ValidEmail("sp ace@example.com"))
}

func TestValidPassword(t *testing.T) {
	require.True(t, ValidPassword("Abcdef1!"))
	require.True(t, ValidPassword("Sup3r$ecretPass"))

	require.False(t, ValidPassword("Ab1!"))                      // короче 8
	require.False(t, ValidPassword("Abcdefgh1!Abcdefgh1!x"))     // длиннее 20
	require.False(t, ValidPassword("abcdefg1!"))                 // нет заглавной
	require.False(t, ValidPassword("ABCDEFG1!"))                 // нет строчной
	require.False(t, ValidPassword("Abcdefgh!"))                 // нет цифры
	require.False(t, ValidPassword("Abcdefgh1"))                 // нет спецсимвола
}

func TestValidNickname(t *testing.T) {
	require.True(t, ValidNickname("tester"))
	require.True(t, ValidNickname("한글닉네임열글자"))

	require.False(t, ValidNickname(""))
	require.False(t, ValidNickname("with space"))
	require.False(t, ValidNickname("elevenchars"))
}
