package result

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		err  error
		want Kind
	}{
		"nil":           {nil, KindNone},
		"timeout":       {fmt.Errorf("save: %w", ErrTimeout), KindTimeout},
		"deadline":      {context.DeadlineExceeded, KindTimeout},
		"validation":    {fmt.Errorf("%w: bad price", ErrValidation), KindValidation},
		"not found":     {fmt.Errorf("order %w", ErrNotFound), KindNotFound},
		"adapter":       {errors.New("connection reset"), KindAdapter},
		"timeout beats": {fmt.Errorf("%w: %w", ErrTimeout, ErrNotFound), KindTimeout},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestFromAndOutcomes(t *testing.T) {
	ok := From(3, nil)
	require.True(t, ok.IsSuccess())
	require.Equal(t, 3, ok.Value)

	failed := From(0, errors.New("boom"))
	require.True(t, failed.IsFailed())
	require.Equal(t, KindAdapter, failed.Kind)
	require.EqualError(t, failed.Err, "boom")

	require.True(t, None[string]().IsEmpty())
	require.Equal(t, "empty", Empty.String())
	require.Equal(t, KindAdapter, Fail[int](nil).Kind)
}
