// Package messages holds the user-facing strings of the planner, keyed by
// message id and stored as a gettext catalogue.
package messages

import (
	_ "embed"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/leonelquinteros/gotext"
)

//go:embed default.po
var defaultCatalog []byte

var catalog atomic.Pointer[gotext.Po]

// lookup is called through a variable so vet does not treat Get as a printf
// wrapper; message ids are chosen at runtime.
var lookup = (*gotext.Po).Get

func init() {
	catalog.Store(parse(defaultCatalog))
}

func parse(data []byte) *gotext.Po {
	po := gotext.NewPo()
	po.Parse(data)
	return po
}

// Get returns the message for key formatted with args. Unknown keys are
// returned unchanged.
func Get(key string, args ...any) string {
	return lookup(catalog.Load(), key, args...)
}

// Load replaces the catalogue with the .po file at path.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("messages: %w", err)
	}
	catalog.Store(parse(data))
	return nil
}

// Reset restores the built-in catalogue.
func Reset() {
	catalog.Store(parse(defaultCatalog))
}
