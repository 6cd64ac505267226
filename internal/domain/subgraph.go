package domain

// SubgraphNode is one node in an investigation neighborhood.
type SubgraphNode struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// SubgraphEdge connects two subgraph nodes.
type SubgraphEdge struct {
	Type   EdgeLabel `json:"type"`
	Source string    `json:"source"`
	Target string    `json:"target"`
}

// Subgraph is the bounded-depth neighborhood around one claimant, fetched for
// investigation views.
type Subgraph struct {
	CenterID string         `json:"centerId"`
	Nodes    []SubgraphNode `json:"nodes"`
	Edges    []SubgraphEdge `json:"edges"`
}
