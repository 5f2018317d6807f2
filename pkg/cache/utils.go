package cache

import "fmt"

// GenerateKeyWithParams builds a cache key from a prefix and its parameters.
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}
