package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DataDir            string `mapstructure:"data_dir"`
	Output             string `mapstructure:"output"`
	UsersFile          string `mapstructure:"users_file"`
	UsersOutput        string `mapstructure:"users_output"`
	DefaultCommentUser string `mapstructure:"default_comment_user"`
	FallbackCategory   string `mapstructure:"fallback_category"`
	CollectionVersion  string `mapstructure:"collection_version"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("output", "public/recipes.json")
	viper.SetDefault("users_file", "data/users/users.json")
	viper.SetDefault("users_output", "public/users.json")
	viper.SetDefault("default_comment_user", "Christine") // unattributed comments credit the book's author
	viper.SetDefault("fallback_category", "Uncategorized")
	viper.SetDefault("collection_version", "1.0.0")

	viper.SetConfigName("recipemd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "recipemd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("RECIPEMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetDataDir returns the recipe sources directory with tilde expansion
func GetDataDir() string {
	return expandTilde(viper.GetString("data_dir"))
}

// GetOutput returns the generated collection path
func GetOutput() string {
	return expandTilde(viper.GetString("output"))
}

// GetUsersFile returns the user registry source path
func GetUsersFile() string {
	return expandTilde(viper.GetString("users_file"))
}

// GetUsersOutput returns the generated users map path
func GetUsersOutput() string {
	return expandTilde(viper.GetString("users_output"))
}

// GetDefaultCommentUser returns the name credited for unattributed comments
func GetDefaultCommentUser() string {
	return viper.GetString("default_comment_user")
}

// GetFallbackCategory returns the category for recipes before any level-1 heading
func GetFallbackCategory() string {
	return viper.GetString("fallback_category")
}

// GetCollectionVersion returns the version string stamped into the collection
func GetCollectionVersion() string {
	return viper.GetString("collection_version")
}

// SetDataDir sets the recipe sources directory at runtime
func SetDataDir(dir string) {
	viper.Set("data_dir", dir)
	C.DataDir = dir
}

// SetOutput sets the collection output path at runtime
func SetOutput(path string) {
	viper.Set("output", path)
	C.Output = path
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
