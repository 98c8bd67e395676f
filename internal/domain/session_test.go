package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClusters() []Cluster {
	return []Cluster{
		{ID: "1", Title: "Work & Projects", Ideas: []string{"finish the report", "prep the meeting"}},
		{ID: "2", Title: "People & Connections", Ideas: []string{"call mom"}},
	}
}

func TestSessionState_NewIsEmptyDump(t *testing.T) {
	s := NewSessionState()
	assert.True(t, s.Empty())
	assert.Equal(t, ScreenDump, s.Screen())
	assert.NotNil(t, s.Clusters)
}

func TestSessionState_ScreenProgression(t *testing.T) {
	s := NewSessionState().WithRawDump("finish the report. call mom")
	assert.Equal(t, ScreenDump, s.Screen())

	s = s.WithClusters(sampleClusters())
	assert.Equal(t, ScreenClusters, s.Screen())
	assert.Equal(t, 2, s.Screen().Step())

	s = s.SelectIdea("call mom")
	assert.Equal(t, ScreenFocus, s.Screen())
	assert.Nil(t, s.NextAction)

	s = s.WithAction("Text mom that you'll call tonight.")
	assert.Equal(t, ScreenFocus, s.Screen())
	assert.Equal(t, "Text mom that you'll call tonight.", s.Action())
	assert.Equal(t, 3, s.Screen().Step())
}

func TestSessionState_WithClustersDropsSelection(t *testing.T) {
	s := NewSessionState().WithClusters(sampleClusters()).SelectIdea("call mom").WithAction("x")

	s = s.WithClusters([]Cluster{{ID: "1", Title: "Other Thoughts", Ideas: []string{"something"}}})

	assert.Nil(t, s.SelectedIdea)
	assert.Nil(t, s.NextAction)
	assert.Equal(t, ScreenClusters, s.Screen())
}

func TestSessionState_WithClustersCopiesInput(t *testing.T) {
	in := sampleClusters()
	s := NewSessionState().WithClusters(in)

	in[0].Ideas[0] = "mutated"

	assert.Equal(t, "finish the report", s.Clusters[0].Ideas[0])
}

func TestSessionState_TransitionsDoNotMutateReceiver(t *testing.T) {
	base := NewSessionState().WithClusters(sampleClusters())
	_ = base.SelectIdea("call mom")
	assert.Nil(t, base.SelectedIdea)
}

func TestSessionState_Back(t *testing.T) {
	s := NewSessionState().WithRawDump("raw text here").WithClusters(sampleClusters()).SelectIdea("call mom").WithAction("x")

	s = s.Back()
	assert.Equal(t, ScreenClusters, s.Screen())
	assert.Nil(t, s.SelectedIdea)
	assert.Nil(t, s.NextAction)

	s = s.Back()
	assert.Equal(t, ScreenDump, s.Screen())
	assert.Equal(t, "raw text here", s.RawDump)
	assert.Equal(t, sampleClusters(), s.Clusters, "clusters survive going back to the dump")

	s = s.Back()
	assert.Equal(t, ScreenDump, s.Screen())

	s = s.ResumeClusters()
	assert.Equal(t, ScreenClusters, s.Screen())
}

func TestSessionState_NewClustersLeaveDumpEditing(t *testing.T) {
	s := NewSessionState().WithRawDump("raw text here").WithClusters(sampleClusters()).Back()
	require.True(t, s.EditingDump)

	s = s.WithRawDump("raw text, revised").WithClusters(sampleClusters()[:1])
	assert.False(t, s.EditingDump)
	assert.Equal(t, ScreenClusters, s.Screen())
	assert.Len(t, s.Clusters, 1)
}

func TestSessionState_ResumeClustersWithoutClusters(t *testing.T) {
	s := NewSessionState().WithRawDump("raw text here")
	assert.Equal(t, ScreenDump, s.ResumeClusters().Screen())
}

func TestSessionState_AllIdeasAndHasIdea(t *testing.T) {
	s := NewSessionState().WithClusters(sampleClusters())

	want := []string{"finish the report", "prep the meeting", "call mom"}
	if diff := cmp.Diff(want, s.AllIdeas()); diff != "" {
		t.Errorf("AllIdeas mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, s.HasIdea("call mom"))
	assert.False(t, s.HasIdea("learn guitar"))
}

func TestCloneClusters_Nil(t *testing.T) {
	require.Nil(t, CloneClusters(nil))
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
}
