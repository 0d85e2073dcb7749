package core

// AgentID is a unique agent identifier.
type AgentID int

// Agent is a single mobile entity on the grid. Its position is always
// in-bounds and never on a Wall cell; strategies only ever propose
// traversable cells as next positions.
type Agent struct {
	ID  AgentID
	Pos Pos
}
