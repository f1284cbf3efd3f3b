package env

import (
	"os"

	"github.com/joho/godotenv"
)

// Load reads KEY=VALUE lines from path (e.g. ".env") into the environment. Variables that are
// already set win over the file. The file may be missing; that is not an error.
func Load(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}
