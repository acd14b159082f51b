package workflow

// State is a lifecycle status value. Each entity kind configures its own
// machine over its own set of states; states not reachable by any
// configured transition are terminal.
type State string

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
