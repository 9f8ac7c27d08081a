package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sandevgo/huskbot/internal/core"
	"github.com/stretchr/testify/require"
)

func TestDispatch_Handled(t *testing.T) {
	handler := &recordingHandler{}
	reg := NewRegistry()
	require.NoError(t, reg.Bind(handler.Handle, []string{"echo"}))
	d := NewDispatcher(reg)

	outcome := d.Dispatch(context.Background(), newFakeEnvelope("/echo hi there", core.ScopeGroup))

	require.Equal(t, Handled, outcome.Status)
	require.Equal(t, "echo", outcome.Trigger)
	require.Equal(t, "/", outcome.Prefix)
	require.Nil(t, outcome.Err)
	require.Equal(t, 1, handler.callCount())
	require.Equal(t, []string{"hi", "there"}, handler.lastParams())
}

func TestDispatch_Ignored(t *testing.T) {
	handler := &recordingHandler{}
	reg := NewRegistry()
	require.NoError(t, reg.Bind(handler.Handle, []string{"echo"}))
	d := NewDispatcher(reg)

	env := newFakeEnvelope("just chatting", core.ScopeGroup)
	outcome := d.Dispatch(context.Background(), env)

	require.Equal(t, Ignored, outcome.Status)
	require.Zero(t, handler.callCount(), "no handler may run on a miss")
	require.Empty(t, env.sentMessages(), "ignoring is silent")
}

func TestDispatch_RejectedIsSilent(t *testing.T) {
	handler := &recordingHandler{}
	reg := NewRegistry()
	require.NoError(t, reg.Bind(handler.Handle, []string{"stats"}, WithScopes("group")))
	d := NewDispatcher(reg)

	env := newFakeEnvelope("/stats", core.ScopeDirect)
	outcome := d.Dispatch(context.Background(), env)

	require.Equal(t, Rejected, outcome.Status)
	require.Equal(t, "stats", outcome.Trigger)
	require.Equal(t, "/", outcome.Prefix)
	require.Equal(t, core.ScopeDirect, outcome.Scope, "rejection reports the refused conversation kind")
	require.Zero(t, handler.callCount())
	require.Empty(t, env.sentMessages())
}

func TestDispatch_OutcomeCarriesMatchedPrefix(t *testing.T) {
	failing := &recordingHandler{err: errors.New("boom")}
	reg := NewRegistry()
	require.NoError(t, reg.Bind(failing.Handle, []string{"echo"}))
	d := NewDispatcher(reg)

	// Matched under the bare prefix, so the reported prefix is empty.
	outcome := d.Dispatch(context.Background(), newFakeEnvelope("echo hi", core.ScopeGroup))
	require.Equal(t, Failed, outcome.Status)
	require.Equal(t, "", outcome.Prefix)
	require.Equal(t, "echo", outcome.Trigger)

	outcome = d.Dispatch(context.Background(), newFakeEnvelope("/echo hi", core.ScopeGroup))
	require.Equal(t, Failed, outcome.Status)
	require.Equal(t, "/", outcome.Prefix)
}

func TestDispatch_FailureIsolation(t *testing.T) {
	cause := errors.New("boom")
	failing := &recordingHandler{err: cause}
	echo := &recordingHandler{}

	reg := NewRegistry()
	require.NoError(t, reg.Bind(failing.Handle, []string{"fail"}))
	require.NoError(t, reg.Bind(echo.Handle, []string{"echo"}))
	d := NewDispatcher(reg)

	outcome := d.Dispatch(context.Background(), newFakeEnvelope("/fail", core.ScopeGroup))
	require.Equal(t, Failed, outcome.Status)
	require.Equal(t, "fail", outcome.Trigger)
	require.NotNil(t, outcome.Err)
	require.ErrorIs(t, outcome.Err, cause)
	require.Equal(t, "fail", outcome.Err.Trigger)

	// A broken handler must not affect the next dispatch.
	outcome = d.Dispatch(context.Background(), newFakeEnvelope("/echo hi", core.ScopeGroup))
	require.Equal(t, Handled, outcome.Status)
	require.Equal(t, 1, echo.callCount())
}

func TestDispatch_PanicContained(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Bind(func(ctx context.Context, env core.Envelope, params []string) error {
		panic("handler bug")
	}, []string{"crash"}))
	d := NewDispatcher(reg)

	outcome := d.Dispatch(context.Background(), newFakeEnvelope("/crash", core.ScopeGroup))
	require.Equal(t, Failed, outcome.Status)
	require.NotNil(t, outcome.Err)
	require.Contains(t, outcome.Err.Error(), "panic")
}

func TestDispatch_ExactlyOneInvocation(t *testing.T) {
	slash := &recordingHandler{}
	bare := &recordingHandler{}

	// Both bindings match "/echo hi" textually: the slash one under
	// "/", the bare one would see trigger "/echo". Only one may run.
	reg := NewRegistry()
	require.NoError(t, reg.Bind(slash.Handle, []string{"echo"}, WithPrefixes("/")))
	require.NoError(t, reg.Bind(bare.Handle, []string{"/echo"}, WithPrefixes("")))
	d := NewDispatcher(reg)

	outcome := d.Dispatch(context.Background(), newFakeEnvelope("/echo hi", core.ScopeGroup))
	require.Equal(t, Handled, outcome.Status)
	require.Equal(t, 1, slash.callCount())
	require.Zero(t, bare.callCount())
}

func TestDispatch_ConcurrentEnvelopes(t *testing.T) {
	handler := &recordingHandler{}
	reg := NewRegistry()
	require.NoError(t, reg.Bind(handler.Handle, []string{"echo"}))
	d := NewDispatcher(reg)

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome := d.Dispatch(context.Background(), newFakeEnvelope("/echo hi", core.ScopeGroup))
			if outcome.Status != Handled {
				t.Errorf("unexpected status %d", outcome.Status)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, n, handler.callCount())
}

func TestDispatch_LateRegistration(t *testing.T) {
	handler := &recordingHandler{}
	reg := NewRegistry()
	d := NewDispatcher(reg)

	outcome := d.Dispatch(context.Background(), newFakeEnvelope("/late", core.ScopeGroup))
	require.Equal(t, Ignored, outcome.Status)

	require.NoError(t, reg.Bind(handler.Handle, []string{"late"}))

	outcome = d.Dispatch(context.Background(), newFakeEnvelope("/late", core.ScopeGroup))
	require.Equal(t, Handled, outcome.Status)
}
