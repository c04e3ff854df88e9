package host

import (
	"context"

	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/rbxdoc/document"
	"github.com/chazu/rbxdoc/offload"
	"github.com/chazu/rbxdoc/rbx"
)

// Module is the rbxdoc surface a scripting host binds against. All
// codec entry points offload their CPU-bound work to the module's pool;
// registry mutation is synchronous and belongs to the host thread.
type Module struct {
	pool     *offload.Pool
	registry *rbx.Registry
	db       *rbx.ReflectionDatabase
	log      commonlog.Logger

	// installProperty is the capability installer's write path; tests
	// substitute it to exercise per-class failure handling.
	installProperty func(class, property string, getter rbx.PropertyGetter, setter rbx.PropertySetter) error
}

// NewModule builds a Module from config, starts its worker pool, and
// installs derived capabilities for every known class.
func NewModule(cfg *Config) *Module {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	m := &Module{
		pool:     offload.NewPool(cfg.Offload.Workers),
		registry: rbx.NewRegistry(),
		db:       rbx.GetDatabase(),
		log:      commonlog.GetLogger("rbxdoc.host"),
	}
	m.installProperty = func(class, property string, getter rbx.PropertyGetter, setter rbx.PropertySetter) error {
		m.registry.InsertProperty(class, property, getter, setter)
		return nil
	}
	m.installByteSizeForAllClasses()
	return m
}

// Close shuts down the worker pool. In-flight codec work finishes first.
func (m *Module) Close() {
	m.pool.Close()
}

// Registry returns the module's instance registry, consulted by the
// host's property and method dispatch.
func (m *Module) Registry() *rbx.Registry { return m.registry }

// GetReflectionDatabase returns the process-wide reflection database.
func (m *Module) GetReflectionDatabase() *rbx.ReflectionDatabase { return m.db }

// DeserializePlace parses bytes as a place document and returns its
// DataModel root. The codec runs on the background pool.
func (m *Module) DeserializePlace(ctx context.Context, data []byte) (rbx.Instance, error) {
	owned := append([]byte(nil), data...)
	task := offload.Go(m.pool, func() (rbx.Instance, error) {
		doc, err := document.FromBytes(owned, document.Place)
		if err != nil {
			return rbx.Instance{}, err
		}
		return doc.IntoDataModelInstance()
	})
	return task.Await(ctx)
}

// DeserializeModel parses bytes as a model document and returns its root
// instances. The codec runs on the background pool.
func (m *Module) DeserializeModel(ctx context.Context, data []byte) ([]rbx.Instance, error) {
	owned := append([]byte(nil), data...)
	task := offload.Go(m.pool, func() ([]rbx.Instance, error) {
		doc, err := document.FromBytes(owned, document.Model)
		if err != nil {
			return nil, err
		}
		return doc.IntoInstanceArray()
	})
	return task.Await(ctx)
}

// SerializePlace encodes a DataModel instance as a place document,
// Binary by default or Xml when asXml is set.
func (m *Module) SerializePlace(ctx context.Context, dataModel rbx.Instance, asXml bool) ([]byte, error) {
	task := offload.Go(m.pool, func() ([]byte, error) {
		doc, err := document.FromDataModelInstance(dataModel)
		if err != nil {
			return nil, err
		}
		return doc.ToBytesWithFormat(pickFormat(asXml))
	})
	return task.Await(ctx)
}

// SerializeModel encodes an instance sequence as a model document,
// Binary by default or Xml when asXml is set.
func (m *Module) SerializeModel(ctx context.Context, instances []rbx.Instance, asXml bool) ([]byte, error) {
	owned := append([]rbx.Instance(nil), instances...)
	task := offload.Go(m.pool, func() ([]byte, error) {
		doc, err := document.FromInstanceArray(owned)
		if err != nil {
			return nil, err
		}
		return doc.ToBytesWithFormat(pickFormat(asXml))
	})
	return task.Await(ctx)
}

func pickFormat(asXml bool) document.Format {
	if asXml {
		return document.Xml
	}
	return document.Binary
}

// ImplementProperty installs a property getter and optional setter for a
// class. A nil setter synthesizes one that fails with a read-only error
// naming the property. Re-installing overwrites silently.
func (m *Module) ImplementProperty(class, property string, getter rbx.PropertyGetter, setter rbx.PropertySetter) {
	m.registry.InsertProperty(class, property, getter, setter)
}

// ImplementMethod installs a method implementation for a class.
func (m *Module) ImplementMethod(class, method string, impl rbx.Method) {
	m.registry.InsertMethod(class, method, impl)
}
