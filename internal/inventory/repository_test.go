package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListUpdatesQueryCastsNullableParams(t *testing.T) {
	for _, cast := range []string{"$1::uuid", "$2::text", "$3::timestamptz", "$4::timestamptz"} {
		require.Contains(t, listUpdatesQuery, cast)
	}
}

func TestNullableFilterArgs(t *testing.T) {
	require.Nil(t, nullString(""))
	require.Equal(t, "abc", nullString("abc"))

	require.Nil(t, nullTime(time.Time{}))
	now := time.Now()
	require.Equal(t, now, nullTime(now))
}
