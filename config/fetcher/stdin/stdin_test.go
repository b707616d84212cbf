package stdin

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(strings.NewReader("backend: {}\n"))()
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "backend: {}\n", string(data))

	data[0] = 'X'

	again, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "backend: {}\n", string(again))
}

func TestFetcher_MaxBytes(t *testing.T) {
	t.Parallel()

	_, err := NewFetcher(strings.NewReader("0123456789"), WithMaxBytes(4))()
	require.ErrorIs(t, err, ErrTooLarge)

	fetcher, err := NewFetcher(strings.NewReader("0123"), WithMaxBytes(4))()
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "0123", string(data))
}

func TestFetcher_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	_, err := NewFetcher(iotest.ErrReader(boom))()
	require.ErrorIs(t, err, boom)
}
