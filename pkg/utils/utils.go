package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	petname "github.com/dustinkirkland/golang-petname"
)

// NewDisplayName is used when a Google account has no name.
func NewDisplayName() string {
	petname.NonDeterministicMode()
	n, _ := rand.Int(rand.Reader, big.NewInt(1000))
	return fmt.Sprintf("%s-%03d", petname.Generate(2, "-"), n.Int64())
}
