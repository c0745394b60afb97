package config

import "os"

func IsDebug() bool {
	return os.Getenv("AGRI_DEBUG") == "1"
}
