package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNodeAssignsMonotonicIDs(t *testing.T) {
	s := New()
	a, err := s.CreateNode([]string{"Person"}, map[string]Value{"name": Str("Ada")}, nil)
	require.NoError(t, err)
	b, err := s.CreateNode([]string{"Person"}, nil, nil)
	require.NoError(t, err)
	assert.Greater(t, uint64(b), uint64(a))
	assert.Equal(t, 2, s.NodeCount())
}

func TestCreateNodeDuplicateExplicitID(t *testing.T) {
	s := New()
	id := NodeID(5)
	_, err := s.CreateNode(nil, nil, &id)
	require.NoError(t, err)

	_, err = s.CreateNode(nil, nil, &id)
	require.Error(t, err)
	se, ok := err.(Error)
	require.True(t, ok)
	assert.Equal(t, KindDuplicateID, se.Kind)
}

func TestLabelIndexing(t *testing.T) {
	s := New()
	a, _ := s.CreateNode([]string{"Person"}, nil, nil)
	_, _ = s.CreateNode([]string{"Company"}, nil, nil)
	c, _ := s.CreateNode([]string{"Person", "Employee"}, nil, nil)

	people := s.NodesByLabel("Person")
	require.Len(t, people, 2)
	assert.Equal(t, a, people[0].ID)
	assert.Equal(t, c, people[1].ID)
}

func TestDeleteNodeCascadesIncidentEdges(t *testing.T) {
	s := New()
	a, _ := s.CreateNode(nil, nil, nil)
	b, _ := s.CreateNode(nil, nil, nil)
	eid, err := s.CreateEdge(a, b, "KNOWS", nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteNode(a))
	_, err = s.GetEdge(eid)
	assert.Error(t, err, "incident edge should be deleted along with its node")
	assert.False(t, s.ContainsNode(a))
}

func TestCreateEdgeRejectsMissingEndpoints(t *testing.T) {
	s := New()
	a, _ := s.CreateNode(nil, nil, nil)
	_, err := s.CreateEdge(a, NodeID(999), "KNOWS", nil)
	assert.Error(t, err)
}

func TestCreateEdgesBatchIsAtomic(t *testing.T) {
	s := New()
	a, _ := s.CreateNode(nil, nil, nil)
	specs := []EdgeSpec{
		{From: a, To: a, Type: "SELF"},
		{From: a, To: NodeID(999), Type: "BAD"},
	}
	_, err := s.CreateEdgesBatch(specs)
	require.Error(t, err)
	assert.Equal(t, 0, s.EdgeCount(), "a failed batch must create nothing")
}

func TestOutEdgesInsertionOrder(t *testing.T) {
	s := New()
	a, _ := s.CreateNode(nil, nil, nil)
	b, _ := s.CreateNode(nil, nil, nil)
	c, _ := s.CreateNode(nil, nil, nil)
	e1, _ := s.CreateEdge(a, b, "T", nil)
	e2, _ := s.CreateEdge(a, c, "T", nil)

	out, err := s.OutEdges(a)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, e1, out[0].ID)
	assert.Equal(t, e2, out[1].ID)
}

func TestSnapshotRestoreRollsBackMutations(t *testing.T) {
	s := New()
	a, _ := s.CreateNode([]string{"Person"}, map[string]Value{"age": Int(30)}, nil)
	snap := s.Snapshot()

	_, err := s.CreateNode(nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetNodeProperty(a, "age", Int(99)))

	s.Restore(snap)

	assert.Equal(t, 1, s.NodeCount())
	n, err := s.GetNode(a)
	require.NoError(t, err)
	assert.Equal(t, int64(30), n.Property("age").I)
}
