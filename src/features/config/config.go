package config

// Config holds the application configuration.
type Config struct {
	Dataset   Dataset   `yaml:"dataset"`
	Generator Generator `yaml:"generator"`
	Charts    Charts    `yaml:"charts"`
	API       API       `yaml:"api"`
	Server    Server    `yaml:"server"`
	Logger    Logger    `yaml:"logger"`
	Telegram  Telegram  `yaml:"telegram"`
}

// Dataset holds where the catalogue is read from and which release years it may contain.
type Dataset struct {
	Path       string `yaml:"path" validate:"required"`
	Watch      bool   `yaml:"watch"`
	DebounceMS int    `yaml:"debounce_ms" validate:"gte=0"`
	YearFrom   int    `yaml:"year_from" validate:"gt=0"`
	YearTo     int    `yaml:"year_to" validate:"gtefield=YearFrom"`
}

// Generator holds the synthetic dataset settings.
type Generator struct {
	Songs      int    `yaml:"songs" validate:"gt=0"`
	Seed       uint64 `yaml:"seed"`
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// Charts holds the chart renderer settings.
type Charts struct {
	OutputDir      string `yaml:"output_dir" validate:"required"`
	Width          int    `yaml:"width" validate:"gte=320"`
	Height         int    `yaml:"height" validate:"gte=240"`
	Thumbnails     bool   `yaml:"thumbnails"`
	ThumbnailWidth uint   `yaml:"thumbnail_width"`
	RenderOnStart  bool   `yaml:"render_on_start"`
}

// API holds the result size limits of the JSON endpoints.
type API struct {
	ListLimit   int `yaml:"list_limit" validate:"gt=0"`
	FilterLimit int `yaml:"filter_limit" validate:"gt=0"`
	TopArtists  int `yaml:"top_artists" validate:"gt=0"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=text json logfmt"`
}

type Telegram struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}
