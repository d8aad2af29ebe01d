package store

// Snapshot is a deep, independent copy of a Store's entire observable
// state, used by internal/txn to implement rollback-by-restore (spec
// §4.2). Durable persistence in internal/snapshot goes through Export and
// BulkLoad instead. It shares no mutable state with the Store it was
// taken from.
type Snapshot struct {
	nodes      map[NodeID]*Node
	edges      map[EdgeID]*Edge
	labelIndex map[string]map[NodeID]struct{}
	typeIndex  map[string]map[EdgeID]struct{}
	adjOut     map[NodeID][]EdgeID
	adjIn      map[NodeID][]EdgeID
	nextNodeID NodeID
	nextEdgeID EdgeID
}

func cloneEdgeIDSlice(ids []EdgeID) []EdgeID {
	if ids == nil {
		return nil
	}
	out := make([]EdgeID, len(ids))
	copy(out, ids)
	return out
}

func cloneNodeIDSet(set map[NodeID]struct{}) map[NodeID]struct{} {
	out := make(map[NodeID]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}

func cloneEdgeIDSet(set map[EdgeID]struct{}) map[EdgeID]struct{} {
	out := make(map[EdgeID]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}

// Snapshot deep-copies the current store state into an independent
// Snapshot.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{
		nodes:      make(map[NodeID]*Node, len(s.nodes)),
		edges:      make(map[EdgeID]*Edge, len(s.edges)),
		labelIndex: make(map[string]map[NodeID]struct{}, len(s.labelIndex)),
		typeIndex:  make(map[string]map[EdgeID]struct{}, len(s.typeIndex)),
		adjOut:     make(map[NodeID][]EdgeID, len(s.adjOut)),
		adjIn:      make(map[NodeID][]EdgeID, len(s.adjIn)),
		nextNodeID: s.nextNodeID,
		nextEdgeID: s.nextEdgeID,
	}
	for id, n := range s.nodes {
		snap.nodes[id] = n.clone()
	}
	for id, e := range s.edges {
		snap.edges[id] = e.clone()
	}
	for l, set := range s.labelIndex {
		snap.labelIndex[l] = cloneNodeIDSet(set)
	}
	for t, set := range s.typeIndex {
		snap.typeIndex[t] = cloneEdgeIDSet(set)
	}
	for id, list := range s.adjOut {
		snap.adjOut[id] = cloneEdgeIDSlice(list)
	}
	for id, list := range s.adjIn {
		snap.adjIn[id] = cloneEdgeIDSlice(list)
	}
	return snap
}

// Restore replaces the store's entire state with a fresh deep copy of
// snap, leaving snap itself unmodified and reusable.
func (s *Store) Restore(snap *Snapshot) {
	restored := snap.deepCopy()
	s.nodes = restored.nodes
	s.edges = restored.edges
	s.labelIndex = restored.labelIndex
	s.typeIndex = restored.typeIndex
	s.adjOut = restored.adjOut
	s.adjIn = restored.adjIn
	s.nextNodeID = restored.nextNodeID
	s.nextEdgeID = restored.nextEdgeID
}

func (snap *Snapshot) deepCopy() *Snapshot {
	out := &Snapshot{
		nodes:      make(map[NodeID]*Node, len(snap.nodes)),
		edges:      make(map[EdgeID]*Edge, len(snap.edges)),
		labelIndex: make(map[string]map[NodeID]struct{}, len(snap.labelIndex)),
		typeIndex:  make(map[string]map[EdgeID]struct{}, len(snap.typeIndex)),
		adjOut:     make(map[NodeID][]EdgeID, len(snap.adjOut)),
		adjIn:      make(map[NodeID][]EdgeID, len(snap.adjIn)),
		nextNodeID: snap.nextNodeID,
		nextEdgeID: snap.nextEdgeID,
	}
	for id, n := range snap.nodes {
		out.nodes[id] = n.clone()
	}
	for id, e := range snap.edges {
		out.edges[id] = e.clone()
	}
	for l, set := range snap.labelIndex {
		out.labelIndex[l] = cloneNodeIDSet(set)
	}
	for t, set := range snap.typeIndex {
		out.typeIndex[t] = cloneEdgeIDSet(set)
	}
	for id, list := range snap.adjOut {
		out.adjOut[id] = cloneEdgeIDSlice(list)
	}
	for id, list := range snap.adjIn {
		out.adjIn[id] = cloneEdgeIDSlice(list)
	}
	return out
}

// NodeRecord is a flat node description used by BulkLoad and by the
// snapshot persistence codecs.
type NodeRecord struct {
	ID     NodeID
	Labels []string
	Props  map[string]Value
}

// EdgeRecord is a flat edge description used by BulkLoad and by the
// snapshot persistence codecs.
type EdgeRecord struct {
	ID    EdgeID
	From  NodeID
	To    NodeID
	Type  string
	Props map[string]Value
}

// BulkLoad replaces the store's contents from a flat description in a
// single O(n) pass: indexes are built once rather than incrementally, per
// spec §4.1's "index construction is batched, not per-element"
// requirement.
func (s *Store) BulkLoad(nodes []NodeRecord, edges []EdgeRecord, nextNodeID NodeID, nextEdgeID EdgeID) {
	newNodes := make(map[NodeID]*Node, len(nodes))
	labelIndex := make(map[string]map[NodeID]struct{})
	adjOut := make(map[NodeID][]EdgeID, len(nodes))
	adjIn := make(map[NodeID][]EdgeID, len(nodes))

	for _, rec := range nodes {
		labelSet := make(map[string]struct{}, len(rec.Labels))
		for _, l := range rec.Labels {
			labelSet[l] = struct{}{}
			set, ok := labelIndex[l]
			if !ok {
				set = make(map[NodeID]struct{})
				labelIndex[l] = set
			}
			set[rec.ID] = struct{}{}
		}
		newNodes[rec.ID] = &Node{ID: rec.ID, Labels: labelSet, Props: cloneProps(rec.Props)}
		adjOut[rec.ID] = nil
		adjIn[rec.ID] = nil
	}

	newEdges := make(map[EdgeID]*Edge, len(edges))
	typeIndex := make(map[string]map[EdgeID]struct{})
	for _, rec := range edges {
		newEdges[rec.ID] = &Edge{ID: rec.ID, From: rec.From, To: rec.To, Type: rec.Type, Props: cloneProps(rec.Props)}
		adjOut[rec.From] = append(adjOut[rec.From], rec.ID)
		adjIn[rec.To] = append(adjIn[rec.To], rec.ID)
		set, ok := typeIndex[rec.Type]
		if !ok {
			set = make(map[EdgeID]struct{})
			typeIndex[rec.Type] = set
		}
		set[rec.ID] = struct{}{}
	}

	s.nodes = newNodes
	s.edges = newEdges
	s.labelIndex = labelIndex
	s.typeIndex = typeIndex
	s.adjOut = adjOut
	s.adjIn = adjIn
	s.nextNodeID = nextNodeID
	s.nextEdgeID = nextEdgeID
}

// Export flattens the store into ordered NodeRecord/EdgeRecord slices
// (ascending by id) plus the current id counters, the shape the snapshot
// persistence codecs encode (spec §6's logical shape).
func (s *Store) Export() (nodes []NodeRecord, edges []EdgeRecord, nextNodeID NodeID, nextEdgeID EdgeID) {
	for _, n := range s.AllNodes() {
		nodes = append(nodes, NodeRecord{ID: n.ID, Labels: n.LabelList(), Props: cloneProps(n.Props)})
	}
	for _, e := range s.AllEdges() {
		edges = append(edges, EdgeRecord{ID: e.ID, From: e.From, To: e.To, Type: e.Type, Props: cloneProps(e.Props)})
	}
	return nodes, edges, s.nextNodeID, s.nextEdgeID
}
