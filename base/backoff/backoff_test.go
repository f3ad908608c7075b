package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestConstant() {
	b := NewConstant(10 * time.Millisecond)
	for i := 0; i < 3; i++ {
		ts.Equal(10*time.Millisecond, b.NextDuration)
		ts.NoError(b.Backoff(context.Background()))
	}
}

func (ts *testsuite) TestExponential() {
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	ts.Equal(time.Millisecond, b.NextDuration)
	ts.NoError(b.Backoff(context.Background()))
	ts.Equal(2*time.Millisecond, b.NextDuration)
	ts.NoError(b.Backoff(context.Background()))
	ts.Equal(4*time.Millisecond, b.NextDuration)
	ts.NoError(b.Backoff(context.Background()))
	// capped by limit
	ts.Equal(4*time.Millisecond, b.NextDuration)
}

func (ts *testsuite) TestCancelledContext() {
	b := NewConstant(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	ts.Equal(context.Canceled, b.Backoff(ctx))
}
