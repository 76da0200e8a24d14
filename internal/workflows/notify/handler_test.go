// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStep implements automa.Step for testing
type fakeStep struct {
	id    string
	state automa.StateBag
}

func (m *fakeStep) Prepare(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

func (m *fakeStep) Execute(ctx context.Context) *automa.Report {
	return automa.SuccessReport(m)
}

func (m *fakeStep) Rollback(ctx context.Context) *automa.Report {
	return automa.SuccessReport(m)
}

func (m *fakeStep) State() automa.StateBag {
	if m.state == nil {
		m.state = &automa.SyncStateBag{}
	}

	return m.state
}

func (m *fakeStep) Id() string { return m.id }

func restoreDefault(t *testing.T) {
	orig := *As()
	t.Cleanup(func() { SetDefault(&orig) })
}

func TestTraceId(t *testing.T) {
	assert.Empty(t, TraceId(context.Background()))

	ctx := WithTraceId(context.Background(), "3c0b7a86-5d0b-4b4e-9a7e-5b1de0e1f1a2")
	assert.Equal(t, "3c0b7a86-5d0b-4b4e-9a7e-5b1de0e1f1a2", TraceId(ctx))
}

func TestSetDefault_Callbacks(t *testing.T) {
	restoreDefault(t)

	var completed, failed bool
	var gotMsg string

	SetDefault(&Handler{
		StepCompletion: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
			completed = true
			gotMsg = msg
		},
		StepFailure: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
			failed = true
			gotMsg = msg
		},
	})

	step := &fakeStep{id: "save-modified-files"}
	As().StepCompletion(context.Background(), step, &automa.Report{Status: automa.StatusSuccess}, "saved")
	require.True(t, completed)
	require.Equal(t, "saved", gotMsg)

	report := &automa.Report{Status: automa.StatusFailed, Error: errorx.IllegalState.New("fail")}
	As().StepFailure(context.Background(), step, report, "failed")
	require.True(t, failed)
	require.Equal(t, "failed", gotMsg)
}

func TestSetDefault_PartialUpdateKeepsExisting(t *testing.T) {
	restoreDefault(t)

	before := As().StepFailure
	require.NotNil(t, before)

	SetDefault(&Handler{
		StepStart: func(ctx context.Context, stp automa.Step, msg string, args ...interface{}) {},
	})
	assert.NotNil(t, As().StepFailure)

	SetDefault(nil)
	assert.NotNil(t, As().StepStart)
}

func TestDefaultHandler_DoesNotPanic(t *testing.T) {
	ctx := WithTraceId(context.Background(), "trace")
	step := &fakeStep{id: "finalize-install"}

	failing := &automa.Report{Id: "restore-modified-files", Status: automa.StatusFailed, Error: errorx.IllegalState.New("boom")}
	report := &automa.Report{
		Id:          "finalize-install",
		Status:      automa.StatusFailed,
		Error:       failing.Error,
		StepReports: []*automa.Report{{Id: "rotate-installed-files", Status: automa.StatusSuccess}, failing},
	}

	assert.NotPanics(t, func() {
		As().StepStart(ctx, step, "Finalizing %s", "/var/www/shop")
		As().StepCompletion(ctx, step, &automa.Report{Status: automa.StatusSuccess, Metadata: map[string]string{"rotated": "true"}}, "done")
		As().StepFailure(ctx, step, report, "failed")
	})
}
