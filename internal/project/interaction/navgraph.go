package interaction

import "github.com/protoboard/protoboard-backend/internal/project/domain"

// Arc is one transition of the navigation automaton: selecting the element
// on screen From moves the prototype to screen To.
type Arc struct {
	From      string `json:"from"`
	ElementID string `json:"element_id"`
	Trigger   string `json:"trigger"`
	To        string `json:"to"`
}

// Graph is the screen-navigation automaton induced by navigate interactions:
// states are screens, the initial state is the active screen, transitions
// are element taps. It is descriptive output for the previewer.
type Graph struct {
	Nodes       []string            `json:"nodes"`
	Initial     string              `json:"initial"`
	Arcs        []Arc               `json:"arcs"`
	Adj         map[string][]string `json:"adj"`
	Unreachable []string            `json:"unreachable,omitempty"`
}

// NavigationGraph builds the automaton for a project. Arcs with an unset
// payload (cleared after a screen delete) are skipped.
func NavigationGraph(p *domain.Project) Graph {
	g := Graph{
		Initial: p.ActiveScreenID,
		Adj:     make(map[string][]string, len(p.Screens)),
	}
	valid := make(map[string]bool, len(p.Screens))
	for i := range p.Screens {
		g.Nodes = append(g.Nodes, p.Screens[i].ID)
		valid[p.Screens[i].ID] = true
	}
	for i := range p.Screens {
		s := &p.Screens[i]
		for j := range s.Elements {
			for _, in := range s.Elements[j].Interactions {
				if in.Action != domain.ActionNavigate || in.Payload == "" || !valid[in.Payload] {
					continue
				}
				g.Arcs = append(g.Arcs, Arc{
					From:      s.ID,
					ElementID: s.Elements[j].ID,
					Trigger:   in.Trigger,
					To:        in.Payload,
				})
				g.Adj[s.ID] = append(g.Adj[s.ID], in.Payload)
			}
		}
	}
	g.Unreachable = unreachableFrom(g.Initial, g.Nodes, g.Adj)
	return g
}

func unreachableFrom(start string, nodes []string, adj map[string][]string) []string {
	seen := map[string]bool{}
	stack := []string{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, adj[n]...)
	}
	var out []string
	for _, n := range nodes {
		if !seen[n] {
			out = append(out, n)
		}
	}
	return out
}
