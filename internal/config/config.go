package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Rules             string `mapstructure:"rules"`
	Output            string `mapstructure:"output"`
	CommentLine       string `mapstructure:"comment_line"`
	CommentBlockOpen  string `mapstructure:"comment_block_open"`
	CommentBlockClose string `mapstructure:"comment_block_close"`
	ColorAdded        string `mapstructure:"color_added"`
	ColorRemoved      string `mapstructure:"color_removed"`
	ColorMarker       string `mapstructure:"color_marker"`
	ColorDim          string `mapstructure:"color_dim"`
	ContextLines      int    `mapstructure:"context_lines"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("rules", "")
	viper.SetDefault("output", "print")
	viper.SetDefault("comment_line", "//")
	viper.SetDefault("comment_block_open", "/*")
	viper.SetDefault("comment_block_close", "*/")
	viper.SetDefault("color_added", "2")   // Green
	viper.SetDefault("color_removed", "1") // Red
	viper.SetDefault("color_marker", "6")  // Cyan
	viper.SetDefault("color_dim", "8")     // Gray
	viper.SetDefault("context_lines", 3)

	viper.SetConfigName("blocksub")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "blocksub"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("BLOCKSUB")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetRules returns the rule table path with tilde expansion
func GetRules() string {
	return expandTilde(viper.GetString("rules"))
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

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetCommentLine returns the line comment marker
func GetCommentLine() string {
	return viper.GetString("comment_line")
}

// GetCommentBlockOpen returns the block comment open marker
func GetCommentBlockOpen() string {
	return viper.GetString("comment_block_open")
}

// GetCommentBlockClose returns the block comment close marker
func GetCommentBlockClose() string {
	return viper.GetString("comment_block_close")
}

// GetColorAdded returns ANSI color code for added diff lines
func GetColorAdded() string {
	return viper.GetString("color_added")
}

// GetColorRemoved returns ANSI color code for removed diff lines
func GetColorRemoved() string {
	return viper.GetString("color_removed")
}

// GetColorMarker returns ANSI color code for diff hunk markers
func GetColorMarker() string {
	return viper.GetString("color_marker")
}

// GetColorDim returns ANSI color code for unchanged context lines
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetContextLines returns how many unchanged lines surround a diff hunk
func GetContextLines() int {
	return viper.GetInt("context_lines")
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}
