package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapFail(t *testing.T) {
	type testcase struct {
		name string
		err  error
		what string
		want string
	}

	tests := [...]testcase{
		{
			name: "nil stays nil",
			err:  nil,
			what: "load snapshot",
		},
		{
			name: "wraps with prefix",
			err:  io.EOF,
			what: "read body",
			want: "can't read body: EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapFail(tt.err, tt.what)
			if tt.err == nil {
				require.NoError(t, got)
				return
			}

			require.EqualError(t, got, tt.want)
			require.True(t, Is(got, tt.err))
		})
	}
}

func TestFailf(t *testing.T) {
	require.EqualError(t, Failf("apply %s event", "reset"), "can't apply reset event")
}
