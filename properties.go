package inject

// PropertyPlugin supplies the configuration properties consulted for
// conditional bean registration. Implementations are read-only from the
// builder's perspective and are only queried during Build.
type PropertyPlugin interface {
	// Contains reports whether the key is present.
	Contains(key string) bool

	// Equal reports whether the key is present with exactly the given
	// value.
	Equal(key, value string) bool
}

// MapProperties is a PropertyPlugin backed by a plain string map, usually
// populated from the feeders package or os.Environ.
type MapProperties struct {
	values map[string]string
}

// NewMapProperties creates a MapProperties merging the given maps in
// order, later maps overriding earlier ones.
func NewMapProperties(sources ...map[string]string) *MapProperties {
	values := make(map[string]string)
	for _, source := range sources {
		for key, value := range source {
			values[key] = value
		}
	}
	return &MapProperties{values: values}
}

// Set stores a single property, returning the receiver for chaining.
func (p *MapProperties) Set(key, value string) *MapProperties {
	p.values[key] = value
	return p
}

// Get returns the value for key and whether it is present.
func (p *MapProperties) Get(key string) (string, bool) {
	value, ok := p.values[key]
	return value, ok
}

func (p *MapProperties) Contains(key string) bool {
	_, ok := p.values[key]
	return ok
}

func (p *MapProperties) Equal(key, value string) bool {
	v, ok := p.values[key]
	return ok && v == value
}

// propertyRequirement is a registration-time condition on the builder's
// property plugin.
type propertyRequirement struct {
	key     string
	value   string
	missing bool
}

// satisfied evaluates the requirement against the plugin. A nil plugin
// means no properties at all: presence conditions fail, absence conditions
// hold.
func (r propertyRequirement) satisfied(properties PropertyPlugin) bool {
	if r.missing {
		return properties == nil || !properties.Contains(r.key)
	}
	if properties == nil {
		return false
	}
	if r.value == "" {
		return properties.Contains(r.key)
	}
	return properties.Equal(r.key, r.value)
}
