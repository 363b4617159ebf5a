package game

// Fate is the surviving option of one category.
type Fate struct {
	Key   string
	Label string
	Value string
}

// Result maps each category to its surviving option, in config order.
type Result struct {
	Fates []Fate
}

// Len returns the number of resolved categories.
func (r Result) Len() int {
	return len(r.Fates)
}

// Value returns the surviving option for a category key.
func (r Result) Value(key string) (string, bool) {
	for _, f := range r.Fates {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Map returns the result keyed by category.
func (r Result) Map() map[string]string {
	m := make(map[string]string, len(r.Fates))
	for _, f := range r.Fates {
		m[f.Key] = f.Value
	}
	return m
}

func (r Result) clone() Result {
	return Result{Fates: append([]Fate(nil), r.Fates...)}
}
