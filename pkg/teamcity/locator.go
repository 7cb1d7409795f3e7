package teamcity

import (
	"fmt"
	"strings"
)

// Locator assembles the server's comma-separated filter expressions, e.g.
// "defaultFilter:false,count:10,buildType:(id:X)". The dimension syntax is
// opaque to this client; the builder only concatenates fragments in the
// order they were added.
type Locator struct {
	dims []string
}

// NewLocator creates an empty locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Add appends a name:value dimension.
func (l *Locator) Add(name, value string) *Locator {
	l.dims = append(l.dims, name+":"+value)

	return l
}

// AddInt appends a name:value dimension with a numeric value.
func (l *Locator) AddInt(name string, value int) *Locator {
	return l.Add(name, fmt.Sprintf("%d", value))
}

// AddRaw appends an already-formed locator fragment verbatim. Empty
// fragments are dropped.
func (l *Locator) AddRaw(fragment string) *Locator {
	if fragment != "" {
		l.dims = append(l.dims, fragment)
	}

	return l
}

// BuildType appends a buildType:(id:...) dimension when id is non-empty.
func (l *Locator) BuildType(id string) *Locator {
	if id != "" {
		l.dims = append(l.dims, "buildType:(id:"+id+")")
	}

	return l
}

// String renders the locator.
func (l *Locator) String() string {
	return strings.Join(l.dims, ",")
}
