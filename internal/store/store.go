// Package store implements the property-graph core: nodes, edges, a typed
// property value, label/type indexing, and deep-copy snapshot/restore.
//
// The store is single-threaded by design (see spec §5): no internal locking
// guards the maps below. Callers sharing a Store across goroutines must
// supply their own mutual exclusion.
package store

import (
	"sort"
)

// Store holds the entire observable state of one graph: nodes, edges, the
// label and relationship-type indexes, and insertion-ordered adjacency
// lists, per the data model in spec §3.
type Store struct {
	nodes map[NodeID]*Node
	edges map[EdgeID]*Edge

	labelIndex map[string]map[NodeID]struct{}
	typeIndex  map[string]map[EdgeID]struct{}

	adjOut map[NodeID][]EdgeID
	adjIn  map[NodeID][]EdgeID

	nextNodeID NodeID
	nextEdgeID EdgeID

	txActive bool
}

// New returns an empty Store with counters starting at 1 (0 is reserved as
// a sentinel "no id" value for callers that need one).
func New() *Store {
	return &Store{
		nodes:      make(map[NodeID]*Node),
		edges:      make(map[EdgeID]*Edge),
		labelIndex: make(map[string]map[NodeID]struct{}),
		typeIndex:  make(map[string]map[EdgeID]struct{}),
		adjOut:     make(map[NodeID][]EdgeID),
		adjIn:      make(map[NodeID][]EdgeID),
		nextNodeID: 1,
		nextEdgeID: 1,
	}
}

// --- transaction guard, consulted by internal/txn ---

// TryAcquireTx marks the store as having an active transaction, returning
// false if one is already active (the caller should surface
// NestedTransaction).
func (s *Store) TryAcquireTx() bool {
	if s.txActive {
		return false
	}
	s.txActive = true
	return true
}

// ReleaseTx clears the active-transaction guard.
func (s *Store) ReleaseTx() {
	s.txActive = false
}

// --- node operations ---

// CreateNode adds a node with the given labels and properties. If id is
// non-nil it is used verbatim (failing with DuplicateId if already taken);
// otherwise the next monotonic id is assigned. In either case next_node_id
// is advanced strictly past the id used.
func (s *Store) CreateNode(labels []string, props map[string]Value, id *NodeID) (NodeID, error) {
	var nodeID NodeID
	if id != nil {
		nodeID = *id
		if _, exists := s.nodes[nodeID]; exists {
			return 0, errDuplicateNodeID(nodeID)
		}
	} else {
		nodeID = s.nextNodeID
	}

	labelSet := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		labelSet[l] = struct{}{}
	}

	node := &Node{
		ID:     nodeID,
		Labels: labelSet,
		Props:  cloneProps(props),
	}
	s.nodes[nodeID] = node
	s.adjOut[nodeID] = nil
	s.adjIn[nodeID] = nil

	for l := range labelSet {
		s.indexLabel(l, nodeID)
	}

	if nodeID >= s.nextNodeID {
		s.nextNodeID = nodeID + 1
	}

	return nodeID, nil
}

func (s *Store) indexLabel(label string, id NodeID) {
	set, ok := s.labelIndex[label]
	if !ok {
		set = make(map[NodeID]struct{})
		s.labelIndex[label] = set
	}
	set[id] = struct{}{}
}

func (s *Store) unindexLabel(label string, id NodeID) {
	set, ok := s.labelIndex[label]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(s.labelIndex, label)
	}
}

func (s *Store) indexType(typ string, id EdgeID) {
	set, ok := s.typeIndex[typ]
	if !ok {
		set = make(map[EdgeID]struct{})
		s.typeIndex[typ] = set
	}
	set[id] = struct{}{}
}

func (s *Store) unindexType(typ string, id EdgeID) {
	set, ok := s.typeIndex[typ]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(s.typeIndex, typ)
	}
}

// AddNodeLabel adds a label to an existing node (additive; a no-op if
// already present). Used by CREATE's merge-on-reuse semantics (§4.5.3).
func (s *Store) AddNodeLabel(id NodeID, label string) error {
	n, ok := s.nodes[id]
	if !ok {
		return errNodeNotFound(id)
	}
	if _, has := n.Labels[label]; has {
		return nil
	}
	n.Labels[label] = struct{}{}
	s.indexLabel(label, id)
	return nil
}

// DeleteNode removes a node and cascades to every incident edge (spec
// invariant 1).
func (s *Store) DeleteNode(id NodeID) error {
	n, ok := s.nodes[id]
	if !ok {
		return errNodeNotFound(id)
	}

	incident := make(map[EdgeID]struct{})
	for _, e := range s.adjOut[id] {
		incident[e] = struct{}{}
	}
	for _, e := range s.adjIn[id] {
		incident[e] = struct{}{}
	}
	for eid := range incident {
		s.removeEdgeUnchecked(eid)
	}

	for l := range n.Labels {
		s.unindexLabel(l, id)
	}

	delete(s.adjOut, id)
	delete(s.adjIn, id)
	delete(s.nodes, id)
	return nil
}

// GetNode returns the node with the given id, or NotFound.
func (s *Store) GetNode(id NodeID) (*Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, errNodeNotFound(id)
	}
	return n, nil
}

// ContainsNode reports whether a node with the given id exists.
func (s *Store) ContainsNode(id NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

// SetNodeProperty sets key to v on the given node.
func (s *Store) SetNodeProperty(id NodeID, key string, v Value) error {
	n, ok := s.nodes[id]
	if !ok {
		return errNodeNotFound(id)
	}
	n.Props[key] = v.Clone()
	return nil
}

// RemoveNodeProperty deletes key from the given node's property map.
func (s *Store) RemoveNodeProperty(id NodeID, key string) error {
	n, ok := s.nodes[id]
	if !ok {
		return errNodeNotFound(id)
	}
	delete(n.Props, key)
	return nil
}

// MergeNodeProperties merges props into the node's existing property map,
// overwriting any overlapping keys (spec §4.5.3's CREATE-over-bound-node
// semantics).
func (s *Store) MergeNodeProperties(id NodeID, props map[string]Value) error {
	n, ok := s.nodes[id]
	if !ok {
		return errNodeNotFound(id)
	}
	for k, v := range props {
		n.Props[k] = v.Clone()
	}
	return nil
}

// AllNodes returns every node, ordered ascending by id for deterministic
// iteration (spec §5).
func (s *Store) AllNodes() []*Node {
	ids := make([]NodeID, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = s.nodes[id]
	}
	return out
}

// NodesByLabel returns every node carrying the given label, ordered
// ascending by id.
func (s *Store) NodesByLabel(label string) []*Node {
	set := s.labelIndex[label]
	if len(set) == 0 {
		return nil
	}
	ids := make([]NodeID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = s.nodes[id]
	}
	return out
}

// --- edge operations ---

// CreateEdge adds a directed, typed edge between two existing nodes.
func (s *Store) CreateEdge(from, to NodeID, typ string, props map[string]Value) (EdgeID, error) {
	if !s.ContainsNode(from) {
		return 0, errMissingNode(from)
	}
	if !s.ContainsNode(to) {
		return 0, errMissingNode(to)
	}

	id := s.nextEdgeID
	s.insertEdge(id, from, to, typ, props)
	return id, nil
}

func (s *Store) insertEdge(id EdgeID, from, to NodeID, typ string, props map[string]Value) {
	e := &Edge{ID: id, From: from, To: to, Type: typ, Props: cloneProps(props)}
	s.edges[id] = e
	s.adjOut[from] = append(s.adjOut[from], id)
	s.adjIn[to] = append(s.adjIn[to], id)
	s.indexType(typ, id)
	if id >= s.nextEdgeID {
		s.nextEdgeID = id + 1
	}
}

// CreateEdgesBatch creates every edge in specs atomically: endpoints are
// validated first, and no edge is created if any spec is invalid.
func (s *Store) CreateEdgesBatch(specs []EdgeSpec) ([]EdgeID, error) {
	for _, spec := range specs {
		if !s.ContainsNode(spec.From) {
			return nil, errMissingNode(spec.From)
		}
		if !s.ContainsNode(spec.To) {
			return nil, errMissingNode(spec.To)
		}
		if spec.ID != nil {
			if _, exists := s.edges[*spec.ID]; exists {
				return nil, errDuplicateEdgeID(*spec.ID)
			}
		}
	}

	ids := make([]EdgeID, len(specs))
	for i, spec := range specs {
		var id EdgeID
		if spec.ID != nil {
			id = *spec.ID
		} else {
			id = s.nextEdgeID
		}
		s.insertEdge(id, spec.From, spec.To, spec.Type, spec.Props)
		ids[i] = id
	}
	return ids, nil
}

// removeEdgeUnchecked removes an edge known to exist, used both by
// DeleteEdge and by DeleteNode's cascade.
func (s *Store) removeEdgeUnchecked(id EdgeID) {
	e := s.edges[id]
	s.adjOut[e.From] = removeEdgeID(s.adjOut[e.From], id)
	s.adjIn[e.To] = removeEdgeID(s.adjIn[e.To], id)
	s.unindexType(e.Type, id)
	delete(s.edges, id)
}

func removeEdgeID(list []EdgeID, id EdgeID) []EdgeID {
	out := list[:0]
	for _, e := range list {
		if e != id {
			out = append(out, e)
		}
	}
	return out
}

// DeleteEdge removes a single edge.
func (s *Store) DeleteEdge(id EdgeID) error {
	if _, ok := s.edges[id]; !ok {
		return errEdgeNotFound(id)
	}
	s.removeEdgeUnchecked(id)
	return nil
}

// DeleteEdgesBatch removes every id in ids, one edge at a time with the
// same index and adjacency bookkeeping as DeleteEdge; ids that name no
// existing edge are skipped without error. DeleteNode's cascade does not
// go through it.
func (s *Store) DeleteEdgesBatch(ids []EdgeID) {
	for _, id := range ids {
		if _, ok := s.edges[id]; ok {
			s.removeEdgeUnchecked(id)
		}
	}
}

// GetEdge returns the edge with the given id, or NotFound.
func (s *Store) GetEdge(id EdgeID) (*Edge, error) {
	e, ok := s.edges[id]
	if !ok {
		return nil, errEdgeNotFound(id)
	}
	return e, nil
}

// SetEdgeProperty sets key to v on the given edge.
func (s *Store) SetEdgeProperty(id EdgeID, key string, v Value) error {
	e, ok := s.edges[id]
	if !ok {
		return errEdgeNotFound(id)
	}
	e.Props[key] = v.Clone()
	return nil
}

// RemoveEdgeProperty deletes key from the given edge's property map.
func (s *Store) RemoveEdgeProperty(id EdgeID, key string) error {
	e, ok := s.edges[id]
	if !ok {
		return errEdgeNotFound(id)
	}
	delete(e.Props, key)
	return nil
}

// AllEdges returns every edge, ordered ascending by id.
func (s *Store) AllEdges() []*Edge {
	ids := make([]EdgeID, 0, len(s.edges))
	for id := range s.edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*Edge, len(ids))
	for i, id := range ids {
		out[i] = s.edges[id]
	}
	return out
}

// EdgesByType returns every edge of the given type, ordered ascending by
// id.
func (s *Store) EdgesByType(typ string) []*Edge {
	set := s.typeIndex[typ]
	if len(set) == 0 {
		return nil
	}
	ids := make([]EdgeID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*Edge, len(ids))
	for i, id := range ids {
		out[i] = s.edges[id]
	}
	return out
}

// OutEdges returns the edges leaving id, in insertion order.
func (s *Store) OutEdges(id NodeID) ([]*Edge, error) {
	if !s.ContainsNode(id) {
		return nil, errNodeNotFound(id)
	}
	list := s.adjOut[id]
	out := make([]*Edge, len(list))
	for i, eid := range list {
		out[i] = s.edges[eid]
	}
	return out, nil
}

// InEdges returns the edges entering id, in insertion order.
func (s *Store) InEdges(id NodeID) ([]*Edge, error) {
	if !s.ContainsNode(id) {
		return nil, errNodeNotFound(id)
	}
	list := s.adjIn[id]
	out := make([]*Edge, len(list))
	for i, eid := range list {
		out[i] = s.edges[eid]
	}
	return out, nil
}

// NodeCount and EdgeCount back the /metrics gauges in cmd/server.
func (s *Store) NodeCount() int { return len(s.nodes) }
func (s *Store) EdgeCount() int { return len(s.edges) }
