package domain

import "time"

// Receipt records the last install attempt of a single package.
type Receipt struct {
	Package     string    `json:"package,omitzero"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
