// Package inject builds the field-injection descriptors of a route target.
package inject

import (
	"fmt"

	"github.com/Alia5/routegen/internal/classify"
	"github.com/Alia5/routegen/internal/codegen/common"
	"github.com/Alia5/routegen/internal/symbol"
	"github.com/Alia5/routegen/pkg/router"
)

const (
	binaryMarshaler = "encoding.BinaryMarshaler"
	textMarshaler   = "encoding.TextMarshaler"
)

// Param describes one injected field.
type Param struct {
	Key         string
	Field       string
	Kind        router.TypeKind
	Description string
	Required    bool
}

var basicKinds = map[string]router.TypeKind{
	"bool":    router.KindBool,
	"byte":    router.KindByte,
	"int8":    router.KindByte,
	"uint8":   router.KindByte,
	"int16":   router.KindShort,
	"uint16":  router.KindShort,
	"int":     router.KindInt,
	"uint":    router.KindInt,
	"int32":   router.KindInt,
	"uint32":  router.KindInt,
	"rune":    router.KindChar,
	"int64":   router.KindLong,
	"uint64":  router.KindLong,
	"float32": router.KindFloat,
	"float64": router.KindDouble,
	"string":  router.KindString,
}

// Builder collects auto-wired fields.
type Builder struct {
	resolver   symbol.Resolver
	classifier *classify.Classifier
	names      *common.Names
}

func NewBuilder(r symbol.Resolver, c *classify.Classifier, n *common.Names) *Builder {
	return &Builder{resolver: r, classifier: c, names: n}
}

// Collect returns the injected fields of d in property declaration order.
// A later field with the same key replaces the earlier one in place.
// Fields whose type is a provider are injected by the service locator and
// are left out.
func (b *Builder) Collect(d symbol.Declaration) ([]Param, error) {
	var params []Param
	index := map[string]int{}
	for _, prop := range d.Properties() {
		ann, ok := prop.Annotation(b.names.AutowiredAnno)
		if !ok {
			continue
		}
		if b.isProvider(prop) {
			continue
		}
		required, err := ann.Bool("required", false)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.QualifiedName(), prop.Name, err)
		}
		key := ann.String("name")
		if key == "" {
			key = prop.Name
		}
		p := Param{
			Key:         key,
			Field:       prop.Name,
			Kind:        b.Kind(prop),
			Description: ann.String("desc"),
			Required:    required,
		}
		if i, dup := index[key]; dup {
			params[i] = p
			continue
		}
		index[key] = len(params)
		params = append(params, p)
	}
	return params, nil
}

func (b *Builder) isProvider(prop symbol.Property) bool {
	decl, ok := prop.Type.Resolve(b.resolver)
	if !ok {
		return false
	}
	return b.classifier.IsProvider(decl)
}

// Kind returns the coarse type tag of a property.
func (b *Builder) Kind(prop symbol.Property) router.TypeKind {
	base, isSlice, _ := common.NormalizeGoType(prop.TypeName)
	if !isSlice {
		if k, ok := basicKinds[base]; ok {
			return k
		}
	}
	decl, ok := prop.Type.Resolve(b.resolver)
	if !ok || isSlice {
		return router.KindObject
	}
	switch {
	case b.classifier.IsSubclassOf(decl, binaryMarshaler):
		return router.KindSerializable
	case b.classifier.IsSubclassOf(decl, textMarshaler):
		return router.KindParcelable
	}
	return router.KindObject
}
