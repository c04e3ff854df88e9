package rbx

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
)

// ---------------------------------------------------------------------------
// ReflectionDatabase: immutable table of known classes
// ---------------------------------------------------------------------------

//go:embed reflection.toml
var embeddedReflection []byte

// ClassDescriptor describes one known instance class.
type ClassDescriptor struct {
	Name       string   `toml:"name"`
	Superclass string   `toml:"superclass"`
	Service    bool     `toml:"service"`
	Properties []string `toml:"properties"`
	Methods    []string `toml:"methods"`
}

type reflectionFile struct {
	Classes []ClassDescriptor `toml:"class"`
}

// ReflectionDatabase is an immutable table of class metadata. It is built
// once from an embedded dataset and never mutated afterward, so it may be
// read from any goroutine without locking.
type ReflectionDatabase struct {
	classes map[string]*ClassDescriptor
	names   []string // sorted
}

// LoadDatabase parses a reflection dataset. Components that want an
// explicitly-owned database instead of the process singleton use this.
func LoadDatabase(data []byte) (*ReflectionDatabase, error) {
	var file reflectionFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("reflection: parse dataset: %w", err)
	}
	db := &ReflectionDatabase{classes: make(map[string]*ClassDescriptor, len(file.Classes))}
	for i := range file.Classes {
		c := &file.Classes[i]
		if c.Name == "" {
			return nil, fmt.Errorf("reflection: class entry %d has no name", i)
		}
		if _, dup := db.classes[c.Name]; dup {
			return nil, fmt.Errorf("reflection: duplicate class %q", c.Name)
		}
		db.classes[c.Name] = c
		db.names = append(db.names, c.Name)
	}
	sort.Strings(db.names)
	return db, nil
}

var (
	reflectionOnce sync.Once
	reflectionDB   *ReflectionDatabase
)

// GetDatabase returns the process-wide reflection database, building it
// from the embedded dataset on first call. Construction runs at most once
// even under concurrent first access. Panics only if the embedded dataset
// is malformed, which is a build defect.
func GetDatabase() *ReflectionDatabase {
	reflectionOnce.Do(func() {
		db, err := LoadDatabase(embeddedReflection)
		if err != nil {
			panic(fmt.Sprintf("rbx: embedded reflection dataset: %v", err))
		}
		reflectionDB = db
	})
	return reflectionDB
}

// GetClassNames returns every known class name in sorted order. The
// returned slice is a copy; callers may keep or mutate it.
func (db *ReflectionDatabase) GetClassNames() []string {
	out := make([]string, len(db.names))
	copy(out, db.names)
	return out
}

// GetClass returns the descriptor for a class name.
func (db *ReflectionDatabase) GetClass(name string) (*ClassDescriptor, bool) {
	c, ok := db.classes[name]
	return c, ok
}

// IsA reports whether class is ancestor or inherits from it.
func (db *ReflectionDatabase) IsA(class, ancestor string) bool {
	for name := class; name != ""; {
		if name == ancestor {
			return true
		}
		c, ok := db.classes[name]
		if !ok {
			return false
		}
		name = c.Superclass
	}
	return false
}

// Len returns the number of known classes.
func (db *ReflectionDatabase) Len() int { return len(db.classes) }
