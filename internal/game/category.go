package game

// Category is a labeled group of mutually exclusive outcomes.
type Category struct {
	Key     string
	Label   string
	Options []string

	// Defaults holds the fallback text for each option slot. It is captured
	// by NewCategory and used when a slot is left empty at spin time.
	Defaults []string

	// Locked categories are static data the player cannot edit or clear.
	Locked bool
}

// NewCategory builds a category whose defaults are its initial options.
func NewCategory(key, label string, options ...string) Category {
	return Category{
		Key:      key,
		Label:    label,
		Options:  append([]string(nil), options...),
		Defaults: append([]string(nil), options...),
	}
}

// NewLockedCategory builds a category that UpdateOption and Clear leave alone.
func NewLockedCategory(key, label string, options ...string) Category {
	c := NewCategory(key, label, options...)
	c.Locked = true
	return c
}

func (c Category) clone() Category {
	c.Options = append([]string(nil), c.Options...)
	c.Defaults = append([]string(nil), c.Defaults...)
	return c
}

// defaultAt returns the fallback text for slot i, or "" if there is none.
func (c Category) defaultAt(i int) string {
	if i < 0 || i >= len(c.Defaults) {
		return ""
	}
	return c.Defaults[i]
}

// Config is the ordered set of categories a session plays with. Order is
// both display order and spin order.
type Config struct {
	Categories []Category
}

// NewConfig validates the categories and returns them as a Config.
func NewConfig(categories ...Category) (Config, error) {
	cfg := Config{Categories: make([]Category, 0, len(categories))}
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if seen[c.Key] {
			return Config{}, invalid("config", c.Key, -1, ErrDuplicateKey)
		}
		if len(c.Options) == 0 {
			return Config{}, invalid("config", c.Key, -1, ErrNoOptions)
		}
		seen[c.Key] = true
		cfg.Categories = append(cfg.Categories, c.clone())
	}
	return cfg, nil
}

// MustConfig is NewConfig for static data known to be valid.
func MustConfig(categories ...Category) Config {
	cfg, err := NewConfig(categories...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	out := Config{Categories: make([]Category, len(c.Categories))}
	for i, cat := range c.Categories {
		out.Categories[i] = cat.clone()
	}
	return out
}

// Keys returns the category keys in order.
func (c Config) Keys() []string {
	keys := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		keys[i] = cat.Key
	}
	return keys
}

// Lookup returns the category with the given key.
func (c Config) Lookup(key string) (Category, bool) {
	if i := c.index(key); i >= 0 {
		return c.Categories[i].clone(), true
	}
	return Category{}, false
}

func (c Config) index(key string) int {
	for i, cat := range c.Categories {
		if cat.Key == key {
			return i
		}
	}
	return -1
}
