package examiner_test

import (
	"testing"

	examiner "github.com/Benaiah/netlify-cms-config-examiner-rewrite"

	"github.com/stretchr/testify/require"
)

func TestVersion_DefaultValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dev", examiner.Version)
	require.Equal(t, "none", examiner.Commit)
	require.Equal(t, "unknown", examiner.CompiledAt)
}
