package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	rows := [][]string{
		{"download_url", "https://host/dl"},
		{"mock", "false"},
	}

	require.NoError(t, printTable(&buf, []string{"FIELD", "VALUE"}, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "FIELD         VALUE", lines[0])
	assert.Equal(t, "download_url  https://host/dl", lines[1])
	assert.Equal(t, "mock          false", lines[2])
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, io.ErrShortWrite }

func TestPrintTable_WriteError(t *testing.T) {
	err := printTable(brokenWriter{}, []string{"A"}, [][]string{{"b"}})
	assert.ErrorIs(t, err, io.ErrShortWrite)
}
