package emit

import (
	"encoding/json"
	"fmt"

	"github.com/Alia5/routegen/internal/route"
	"github.com/Alia5/routegen/internal/symbol"
)

// RouteDoc is one entry of the route documentation file.
type RouteDoc struct {
	Group       string     `json:"group"`
	Path        string     `json:"path"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Mark        int        `json:"mark"`
	Prototypes  []string   `json:"prototypes"`
	ClassName   string     `json:"className"`
	Params      []ParamDoc `json:"params"`
}

// ParamDoc documents one injected parameter.
type ParamDoc struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"isRequired"`
}

// RouteDocs builds the documentation model keyed by group name.
func RouteDocs(groups *route.GroupSet, prototypes map[string][]string) map[string][]RouteDoc {
	out := map[string][]RouteDoc{}
	for _, g := range groups.Groups() {
		docs := []RouteDoc{}
		for _, m := range groups.Routes(g) {
			d := RouteDoc{
				Group:       m.Group,
				Path:        m.Path,
				Description: m.Name,
				Type:        m.Type.Lower(),
				Mark:        m.Extra,
				Prototypes:  append([]string{}, prototypes[m.Target.QualifiedName()]...),
				ClassName:   m.Target.QualifiedName(),
				Params:      []ParamDoc{},
			}
			for _, p := range m.Params {
				d.Params = append(d.Params, ParamDoc{
					Key:         p.Key,
					Type:        p.Kind.String(),
					Description: p.Description,
					Required:    p.Required,
				})
			}
			docs = append(docs, d)
		}
		out[g] = docs
	}
	return out
}

func (p *Planner) docs(groups *route.GroupSet, prototypes map[string][]string, decls []symbol.Declaration) (RawRequest, error) {
	data, err := json.MarshalIndent(RouteDocs(groups, prototypes), "", "  ")
	if err != nil {
		return RawRequest{}, fmt.Errorf("marshal route docs: %w", err)
	}
	return RawRequest{
		Dir:     p.names.DocDir,
		Stem:    p.names.DocPrefix + p.module,
		Ext:     "json",
		Content: append(data, '\n'),
		Deps:    files(decls...),
	}, nil
}
