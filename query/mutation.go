package query

// Mutation is an Orchestrator for imperative call sites. It is behaviorally
// identical to the lazy orchestrator; the distinct type exists so mutation
// call sites read as mutations, and so nothing ever triggers one
// automatically.
type Mutation struct {
	*Orchestrator
}

// NewMutation creates a mutation controller for op.
func NewMutation(cfg *Config, op Operation, defaults *Options) *Mutation {
	if op.Kind == "" {
		op.Kind = "mutation"
	}
	return &Mutation{Orchestrator: NewOrchestrator(cfg, op, defaults)}
}
