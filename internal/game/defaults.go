package game

// HousingKey is the key of the static MASH housing category.
const HousingKey = "mash"

// HousingOptions are the fixed Mansion/Apartment/Shack/House outcomes.
var HousingOptions = []string{"Mansion", "Apartment", "Shack", "House"}

// DefaultCategories returns the editable categories shown on first load.
func DefaultCategories() []Category {
	return []Category{
		NewCategory("partner", "Partner", "Jannet", "Michael", "Steve", "Jeff (Hi, I am Jeff!)"),
		NewCategory("career", "Career", "Scientist", "Rock Star", "Doctor", "Poop Cleaner"),
		NewCategory("city", "City", "Paris", "London", "New York", "Duddley"),
		NewCategory("salary", "Salary/year", "£100.000", "£50.000", "£10.000", "£0.1"),
		NewCategory("children", "Children", "3", "2", "1", "15"),
		NewCategory("vehicle", "Vehicle", "Volvo", "Tesla", "Ferrari", "Bike"),
	}
}

// HousingCategory returns the locked MASH category.
func HousingCategory() Category {
	return NewLockedCategory(HousingKey, "MASH", HousingOptions...)
}

// DefaultConfig is the housing category followed by the default categories.
func DefaultConfig() Config {
	return MustConfig(append([]Category{HousingCategory()}, DefaultCategories()...)...)
}
