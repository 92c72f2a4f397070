package envutil

import (
	"log"
	"os"
	"strconv"
)

// GetenvDefault gets the value of an environment variable, or returns the
// specified default value if that variable is not set.
func GetenvDefault(name, defaultValue string) string {
	val, found := os.LookupEnv(name)
	if !found {
		return defaultValue
	}
	return val
}

// GetenvDefaultInt gets an environment variable as an int, or else returns the default
func GetenvDefaultInt(name string, defaultVal int) int {
	val, found := os.LookupEnv(name)
	if !found {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("environment variable %s should be an integer: %v", name, err)
	}
	return intVal
}

// GetenvBool reports whether an environment variable is set to a true value ("1", "true", ...).
// Unset or unparsable values are false.
func GetenvBool(name string) bool {
	val, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && val
}

// HasValue reports whether the environment variable is set to a non-empty value
func HasValue(name string) bool {
	return os.Getenv(name) != ""
}
