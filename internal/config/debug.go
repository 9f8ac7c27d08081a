package config

import "os"

func IsDebug() bool {
	return os.Getenv("HUSK_DEBUG") == "1"
}
