package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPassword_EntradaRedirigida(t *testing.T) {
	var prompt bytes.Buffer

	got, err := readPassword(strings.NewReader("rahasia\r\nsobra\n"), &prompt)

	require.NoError(t, err)
	assert.Equal(t, "rahasia", got)
	assert.Equal(t, "Password: ", prompt.String())
}

func TestReadPassword_SinSaltoFinal(t *testing.T) {
	got, err := readPassword(strings.NewReader("rahasia"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "rahasia", got)

	_, err = readPassword(strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "leer password")
}
