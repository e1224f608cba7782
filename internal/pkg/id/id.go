package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewLicenseKey returns a new ULID for use as a license key. Keys sort
// by issue time.
func NewLicenseKey() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
