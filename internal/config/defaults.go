package config

import "github.com/picstock/picstock/internal/inventory"

// GetDefault returns the default configuration
func GetDefault() (*Config, error) {
	config := &Config{
		Categories: defaultCategories(),
	}
	if err := config.fillDefaults(); err != nil {
		return nil, err
	}
	return config, nil
}

func defaultCategories() map[string][]string {
	sets := inventory.DefaultSets()
	categories := make(map[string][]string, len(sets))
	for category, extensions := range sets {
		categories[string(category)] = extensions
	}
	return categories
}
