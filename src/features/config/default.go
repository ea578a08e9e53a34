package config

var defaultConfig = Config{
	Dataset: Dataset{
		Path:       "./data/songs.csv",
		Watch:      false,
		DebounceMS: 500,
		YearFrom:   2010,
		YearTo:     2024,
	},
	Generator: Generator{
		Songs: 200,
		Seed:  42,
	},
	Charts: Charts{
		OutputDir:      "./static/charts",
		Width:          1000,
		Height:         600,
		Thumbnails:     false,
		ThumbnailWidth: 320,
		RenderOnStart:  true,
	},
	API: API{
		ListLimit:   50,
		FilterLimit: 20,
		TopArtists:  10,
	},
	Server: Server{
		PrintRoutes: false,
		Port:        5000,
	},
	Logger: Logger{
		Enabled: true,
		Level:   "info",
		Format:  "text",
	},
	Telegram: Telegram{
		Enabled: false,
		Token:   "", // Can be obtained with https://t.me/BotFather
	},
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}
