package emit

import (
	"go/token"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	nonIdent = regexp.MustCompile(`[^a-z0-9_]+`)
	majorDir = regexp.MustCompile(`^v[0-9]+$`)
)

// imports allocates deterministic aliases for the packages a generated
// file references.
type imports struct {
	byPath  map[string]string
	byAlias map[string]string
}

// newImports pins fixed path->alias pairs and keeps reserved identifiers,
// such as method parameter names, from being used as aliases.
func newImports(fixed map[string]string, reserved ...string) *imports {
	im := &imports{byPath: map[string]string{}, byAlias: map[string]string{}}
	for path, alias := range fixed {
		im.byAlias[alias] = path
	}
	for _, r := range reserved {
		im.byAlias[r] = ""
	}
	return im
}

// qualify returns "alias.name" for a name declared in pkg.
func (im *imports) qualify(pkg, name string) string {
	return im.alias(pkg) + "." + name
}

func (im *imports) alias(pkg string) string {
	if a, ok := im.byPath[pkg]; ok {
		return a
	}
	base := aliasBase(pkg)
	a := base
	for i := 2; ; i++ {
		owner, taken := im.byAlias[a]
		if !taken || owner == pkg {
			break
		}
		a = base + strconv.Itoa(i)
	}
	im.byPath[pkg] = a
	im.byAlias[a] = pkg
	return a
}

func (im *imports) list() []Import {
	out := make([]Import, 0, len(im.byPath))
	for p, a := range im.byPath {
		out = append(out, Import{Alias: a, Path: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func aliasBase(pkg string) string {
	parts := strings.Split(pkg, "/")
	last := parts[len(parts)-1]
	if majorDir.MatchString(last) && len(parts) > 1 {
		last = parts[len(parts)-2]
	}
	a := nonIdent.ReplaceAllString(strings.ToLower(last), "")
	if a == "" || (a[0] >= '0' && a[0] <= '9') {
		a = "pkg" + a
	}
	if token.IsKeyword(a) {
		a += "pkg"
	}
	return a
}
