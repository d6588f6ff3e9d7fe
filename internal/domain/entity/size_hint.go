package entity

import "time"

// SizeHint is the last grow a container had in a session.
type SizeHint struct {
	SessionID     string
	ContainerName string
	Grow          float64
	UpdatedAt     time.Time
}
