package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/intelligence"
	"github.com/alexanderramin/pinely/internal/llm"
	"github.com/alexanderramin/pinely/internal/session"
	"github.com/alexanderramin/pinely/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	return r.events[len(r.events)-1]
}

type flowFixture struct {
	svc      FlowService
	storage  *session.MemoryStorage
	client   *testutil.StubLLMClient
	observer *recordingObserver
}

func newFlowFixture(t *testing.T, client llm.LLMClient) *flowFixture {
	t.Helper()
	stub, _ := client.(*testutil.StubLLMClient)
	storage := session.NewMemoryStorage()
	obs := &recordingObserver{}
	rng := rand.New(rand.NewPCG(1, 2))
	svc := NewFlowService(
		storage,
		intelligence.NewOrganizeService(client, nil),
		intelligence.NewActionService(client, intelligence.WithRand(rng)),
		rng,
		obs,
	)
	return &flowFixture{svc: svc, storage: storage, client: stub, observer: obs}
}

func TestFlow_FullJourneyWithoutModel(t *testing.T) {
	f := newFlowFixture(t, nil)
	ctx := context.Background()

	assert.Equal(t, domain.ScreenDump, f.svc.Current(ctx).Screen())

	out, err := f.svc.Organize(ctx, testutil.SampleDump)
	require.NoError(t, err)
	assert.True(t, out.Result.Fallback)
	assert.Equal(t, domain.ScreenClusters, out.State.Screen())
	assert.Equal(t, testutil.SampleDump, out.State.RawDump)

	state, err := f.svc.Select(ctx, "also call mom")
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenFocus, state.Screen())

	act, err := f.svc.GenerateAction(ctx, domain.TimeShort, domain.EnergyLow)
	require.NoError(t, err)
	assert.True(t, act.Result.Fallback)
	assert.Contains(t, intelligence.FallbackActionCandidates("also call mom", domain.EnergyLow), act.State.Action())

	// A fresh load sees everything that was saved.
	saved := f.svc.Current(ctx)
	assert.Equal(t, act.State, saved)
}

func TestFlow_OrganizeUsesModel(t *testing.T) {
	client := &testutil.StubLLMClient{Responses: map[llm.TaskType]string{
		llm.TaskOrganize: `{"clusters":[{"id":"1","title":"Today","ideas":["finish the report","call mom"]}]}`,
	}}
	f := newFlowFixture(t, client)

	out, err := f.svc.Organize(context.Background(), testutil.SampleDump)

	require.NoError(t, err)
	assert.False(t, out.Result.Fallback)
	assert.Equal(t, []string{"finish the report", "call mom"}, out.State.AllIdeas())
	assert.Equal(t, 1, f.client.Calls(llm.TaskOrganize))
	assert.Equal(t, "llm", f.observer.last().Fields["source"])
}

func TestFlow_OrganizeInvalidInputLeavesStateAlone(t *testing.T) {
	f := newFlowFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, session.Save(ctx, testutil.NewTestState(), f.storage))

	_, err := f.svc.Organize(ctx, "short")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, testutil.NewTestState(), f.svc.Current(ctx))
	assert.False(t, f.observer.last().Success)
}

func TestFlow_ReorganizeDropsSelection(t *testing.T) {
	f := newFlowFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, session.Save(ctx, testutil.NewTestState(testutil.WithSelected("finish the report"), testutil.WithAction("do it")), f.storage))

	out, err := f.svc.Organize(ctx, "design the poster. read a chapter")

	require.NoError(t, err)
	assert.Nil(t, out.State.SelectedIdea)
	assert.Nil(t, out.State.NextAction)
}

func TestFlow_SelectUnknownIdea(t *testing.T) {
	f := newFlowFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, session.Save(ctx, testutil.NewTestState(), f.storage))

	_, err := f.svc.Select(ctx, "not there")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFlow_PickRandom(t *testing.T) {
	f := newFlowFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.PickRandom(ctx)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "no thoughts yet")

	require.NoError(t, session.Save(ctx, testutil.NewTestState(), f.storage))
	state, err := f.svc.PickRandom(ctx)
	require.NoError(t, err)
	assert.Contains(t, domain.FlattenIdeas(testutil.NewTestClusters()), state.Selected())
	assert.Equal(t, domain.ScreenFocus, state.Screen())
}

func TestFlow_GenerateActionRequiresSelection(t *testing.T) {
	f := newFlowFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, session.Save(ctx, testutil.NewTestState(), f.storage))

	_, err := f.svc.GenerateAction(ctx, domain.TimeShort, domain.EnergyLow)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestFlow_GenerateActionUsesModel(t *testing.T) {
	client := &testutil.StubLLMClient{Responses: map[llm.TaskType]string{
		llm.TaskAction: "Send mom a text saying you'll call tonight.",
	}}
	f := newFlowFixture(t, client)
	ctx := context.Background()
	require.NoError(t, session.Save(ctx, testutil.NewTestState(testutil.WithSelected("also call mom")), f.storage))

	out, err := f.svc.GenerateAction(ctx, domain.TimeMedium, domain.EnergyHigh)

	require.NoError(t, err)
	assert.False(t, out.Result.Fallback)
	assert.Equal(t, "Send mom a text saying you'll call tonight.", out.State.Action())
	require.Len(t, client.Requests, 1)
	assert.Contains(t, client.Requests[0].UserPrompt, "about half an hour")
	assert.Contains(t, client.Requests[0].UserPrompt, "energized and ready to dive in")
}

func TestFlow_BackAndReset(t *testing.T) {
	f := newFlowFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, session.Save(ctx, testutil.NewTestState(testutil.WithSelected("finish the report"), testutil.WithAction("go")), f.storage))

	state, err := f.svc.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenClusters, state.Screen())
	assert.Empty(t, state.Action())

	state, err = f.svc.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenDump, state.Screen())
	assert.Equal(t, testutil.SampleDump, state.RawDump, "raw text is kept for editing")
	assert.Equal(t, testutil.NewTestClusters(), f.svc.Current(ctx).Clusters, "clusters survive back")

	state, err = f.svc.ResumeClusters(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenClusters, state.Screen())
	assert.Equal(t, "resume-clusters", f.observer.last().Name)

	require.NoError(t, f.svc.Reset(ctx))
	assert.True(t, f.svc.Current(ctx).Empty())
}

func TestFlow_ResumeClustersWithoutClusters(t *testing.T) {
	f := newFlowFixture(t, nil)

	_, err := f.svc.ResumeClusters(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFlow_SaveDraftKeepsClusters(t *testing.T) {
	f := newFlowFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, session.Save(ctx, testutil.NewTestState(testutil.WithSelected("finish the report")), f.storage))

	state, err := f.svc.SaveDraft(ctx, "half")
	require.NoError(t, err)
	assert.Equal(t, "half", state.RawDump)

	saved := f.svc.Current(ctx)
	assert.Equal(t, "half", saved.RawDump)
	assert.Equal(t, testutil.NewTestClusters(), saved.Clusters)
	assert.Equal(t, "finish the report", saved.Selected())
}

func TestFlow_SaveDraftBelowMinimumIsKept(t *testing.T) {
	f := newFlowFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.SaveDraft(ctx, "taxes")
	require.NoError(t, err)
	assert.Equal(t, "taxes", f.svc.Current(ctx).RawDump)
	assert.Equal(t, domain.ScreenDump, f.svc.Current(ctx).Screen())
}

func TestFlow_SaveFailureSurfaces(t *testing.T) {
	f := newFlowFixture(t, nil)
	f.storage.FailWith(errors.New("disk full"))

	_, err := f.svc.Organize(context.Background(), testutil.SampleDump)
	assert.ErrorContains(t, err, "disk full")
}

func TestLogUseCaseObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "select", Success: true})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "select", Err: domain.ErrInvalidInput})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "organize", Err: errors.New("disk full")})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=flow_use_case use_case=select")
	assert.Contains(t, out, "level=WARN msg=flow_use_case use_case=select")
	assert.Contains(t, out, "level=ERROR msg=flow_use_case use_case=organize")
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
