package utils

import (
	"fmt"
	"github.com/twmb/murmur3"
)

func HashString(s string) uint64 {
	hash := murmur3.New64()
	_, err := hash.Write([]byte(s))
	if err != nil {
		panic(err)
	}
	return hash.Sum64()
}

// ShardPrefix spreads keys over 256 buckets named "00".."ff".
func ShardPrefix(key string) string {
	return fmt.Sprintf("%02x", HashString(key)%256)
}
