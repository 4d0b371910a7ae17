package config

import (
	"os"
	"sync"
)

type PeopleDataConfig struct {
	APIKey     string
	BaseURL    string
	SearchSize int
}

var (
	peopleDataConfig *PeopleDataConfig
	peopleDataOnce   sync.Once
)

func LoadPeopleDataConfig() *PeopleDataConfig {
	peopleDataOnce.Do(func() {
		peopleDataConfig = &PeopleDataConfig{
			APIKey:     os.Getenv("PDL_API_KEY"),
			BaseURL:    envString("PDL_BASE_URL", "https://api.peopledatalabs.com/v5"),
			SearchSize: envInt("PDL_SEARCH_SIZE", 10),
		}
	})
	return peopleDataConfig
}
