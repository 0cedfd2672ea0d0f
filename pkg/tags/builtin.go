package tags

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed data/*.yaml
var builtinData embed.FS

// Built-in catalog IDs.
const (
	HTML5ID       = "html5"
	VisualforceID = "visualforce"
)

var (
	html5Catalog       = sync.OnceValues(func() (*Catalog, error) { return loadBuiltin("data/html5.yaml") })
	visualforceCatalog = sync.OnceValues(func() (*Catalog, error) { return loadBuiltin("data/visualforce.yaml") })
)

func loadBuiltin(name string) (*Catalog, error) {
	data, err := builtinData.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read builtin catalog %s: %w", name, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("builtin catalog %s: %w", name, err)
	}
	return c, nil
}

// HTML5 returns the HTML5 element catalog. It applies to every language.
func HTML5() *Catalog {
	return mustBuiltin(html5Catalog())
}

// Visualforce returns the Visualforce component catalog. It applies only
// to the "visualforce" language.
func Visualforce() *Catalog {
	return mustBuiltin(visualforceCatalog())
}

// Builtin returns the embedded providers in their default order.
func Builtin() []Provider {
	return []Provider{HTML5(), Visualforce()}
}

// BuiltinIDs lists the IDs of the embedded providers.
func BuiltinIDs() []string {
	return []string{HTML5ID, VisualforceID}
}

// mustBuiltin panics on a broken embedded catalog, which is a build defect.
func mustBuiltin(c *Catalog, err error) *Catalog {
	if err != nil {
		panic(err)
	}
	return c
}
