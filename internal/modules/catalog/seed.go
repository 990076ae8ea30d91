// README: YAML seed loader for the memory catalog driver.
package catalog

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadSeed reads a YAML document of the form
//
//	rental_companies:
//	  - id: c1
//	    name: Da Nang Wheels
//
// into a MemoryStore. Every record needs an id.
func LoadSeed(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read seed %s", path)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) (*MemoryStore, error) {
	var doc map[string][]map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrap(err, "catalog: parse seed")
	}
	store := NewMemoryStore()
	for collection, docs := range doc {
		for i, d := range docs {
			id := fmt.Sprint(d["id"])
			if d["id"] == nil || id == "" {
				return nil, eris.Errorf("catalog: seed %s[%d] has no id", collection, i)
			}
			delete(d, "id")
			store.Put(collection, Record{ID: id, Data: d})
		}
	}
	return store, nil
}
