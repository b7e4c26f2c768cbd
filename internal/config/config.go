package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Root         string `mapstructure:"root"`
	Highlight    bool   `mapstructure:"highlight"`
	Style        string `mapstructure:"style"`
	LineNumbers  bool   `mapstructure:"line_numbers"`
	FrontMatter  bool   `mapstructure:"front_matter"`
	Unsafe       bool   `mapstructure:"unsafe"`
	Jobs         int    `mapstructure:"jobs"`
	LogLevel     string `mapstructure:"log_level"`
	ColorFound   string `mapstructure:"color_found"`
	ColorMissing string `mapstructure:"color_missing"`
	ColorError   string `mapstructure:"color_error"`
	ColorDim     string `mapstructure:"color_dim"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper. An explicit file, if given,
// replaces the search path lookup.
func Init(file string) error {
	viper.SetDefault("root", workingDir())
	viper.SetDefault("highlight", false)
	viper.SetDefault("style", "github")
	viper.SetDefault("line_numbers", false)
	viper.SetDefault("front_matter", true)
	viper.SetDefault("unsafe", false)
	viper.SetDefault("jobs", 4)
	viper.SetDefault("log_level", "warning")
	viper.SetDefault("color_found", "32")   // Green
	viper.SetDefault("color_missing", "33") // Yellow
	viper.SetDefault("color_error", "31")   // Red
	viper.SetDefault("color_dim", "90")     // Gray

	viper.SetEnvPrefix("SNIPMD")
	viper.AutomaticEnv()

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
		return viper.Unmarshal(&C)
	}

	viper.SetConfigName("snipmd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "snipmd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetRoot returns the snippet root with tilde expansion, made absolute
func GetRoot() string {
	root := expandTilde(viper.GetString("root"))
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetHighlight returns whether code is highlighted with chroma
func GetHighlight() bool {
	return viper.GetBool("highlight")
}

// GetStyle returns the chroma style name
func GetStyle() string {
	return viper.GetString("style")
}

// GetLineNumbers returns whether highlighted code shows line numbers
func GetLineNumbers() bool {
	return viper.GetBool("line_numbers")
}

// GetFrontMatter returns whether front matter is stripped and interpreted
func GetFrontMatter() bool {
	return viper.GetBool("front_matter")
}

// GetUnsafe returns whether raw HTML passes through
func GetUnsafe() bool {
	return viper.GetBool("unsafe")
}

// GetJobs returns how many documents render concurrently
func GetJobs() int {
	if n := viper.GetInt("jobs"); n > 0 {
		return n
	}
	return 1
}

// GetLogLevel returns the logrus level name
func GetLogLevel() string {
	return viper.GetString("log_level")
}

// GetColorFound returns ANSI color code for existing targets
func GetColorFound() string {
	return viper.GetString("color_found")
}

// GetColorMissing returns ANSI color code for missing targets
func GetColorMissing() string {
	return viper.GetString("color_missing")
}

// GetColorError returns ANSI color code for malformed directives
func GetColorError() string {
	return viper.GetString("color_error")
}

// GetColorDim returns ANSI color code for secondary text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// SetRoot sets the root at runtime
func SetRoot(root string) {
	viper.Set("root", root)
	C.Root = root
}

func workingDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// SetUnsafe enables raw HTML passthrough at runtime
func SetUnsafe(unsafe bool) {
	viper.Set("unsafe", unsafe)
	C.Unsafe = unsafe
}

// SetLineNumbers enables line numbers in highlighted code at runtime
func SetLineNumbers(on bool) {
	viper.Set("line_numbers", on)
	C.LineNumbers = on
}
