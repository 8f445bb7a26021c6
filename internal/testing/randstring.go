package testing

import (
	"math/rand"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandString generates a random 10-symbol string from the lower- and uppercase alphabet.
// Tests use it for usernames that must not collide within a shared store.
func RandString() string {
	var out strings.Builder
	for i := 0; i < 10; i++ {
		out.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return out.String()
}
