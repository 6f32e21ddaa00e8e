package suppliers

// A Group is a set of provider ids served by one adapter, typically
// several brands behind a single supplier login.
type Group struct {
	Key         string
	ProviderIDs []int
	Adapter     Adapter
}

// Registry holds the configured supplier groups.
type Registry struct {
	groups []Group
}

func NewRegistry(groups ...Group) *Registry {
	return &Registry{groups: groups}
}

func (r *Registry) Groups() []Group {
	return r.groups
}

// Execution pairs a group with the member provider whose search params it
// will be called with.
type Execution struct {
	Group      Group
	ProviderID int
	Params     SearchParams
}

// Executions returns one call per group that has at least one live-API
// provider with built params. The first matching member represents the
// whole group.
func (r *Registry) Executions(params map[int]SearchParams) []Execution {
	var out []Execution
	for _, g := range r.groups {
		for _, pid := range g.ProviderIDs {
			if p, ok := params[pid]; ok {
				out = append(out, Execution{Group: g, ProviderID: pid, Params: p})
				break
			}
		}
	}
	return out
}
