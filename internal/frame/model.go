package frame

import "fmt"

// Model owns the nodes and elements of one structure and numbers them
// sequentially from 1 as they are registered.
type Model struct {
	nodes    []*Node
	elements []*Element
	owned    map[*Node]bool
}

// NewModel returns an empty model
func NewModel() *Model {
	return &Model{owned: make(map[*Node]bool)}
}

// AddNode registers a node at (x, y)
func (m *Model) AddNode(x, y float64) *Node {
	n := newNode(len(m.nodes)+1, x, y)
	m.nodes = append(m.nodes, n)
	m.owned[n] = true
	return n
}

// AddElement registers an element of the given kind between n1 and n2
func (m *Model) AddElement(kind Kind, n1, n2 *Node, sec Section) (*Element, error) {
	for _, n := range []*Node{n1, n2} {
		if n != nil && !m.owned[n] {
			return nil, &ValidationError{fmt.Sprintf("node %d does not belong to this model", n.ID)}
		}
	}
	e, err := newElement(len(m.elements)+1, kind, n1, n2, sec)
	if err != nil {
		return nil, err
	}
	m.elements = append(m.elements, e)
	return e, nil
}

// Nodes returns the registered nodes ordered by ID
func (m *Model) Nodes() []*Node { return m.nodes }

// Elements returns the registered elements ordered by ID
func (m *Model) Elements() []*Element { return m.elements }

// Node returns the node with the given ID, or nil
func (m *Model) Node(id int) *Node {
	if id < 1 || id > len(m.nodes) {
		return nil
	}
	return m.nodes[id-1]
}

// Element returns the element with the given ID, or nil
func (m *Model) Element(id int) *Element {
	if id < 1 || id > len(m.elements) {
		return nil
	}
	return m.elements[id-1]
}

// DOFCount returns the size of the global system
func (m *Model) DOFCount() int {
	return DOFsPerNode * len(m.nodes)
}
