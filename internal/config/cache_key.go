package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the Redis key holding a student's active
// session JTI. Students are limited to one device at a time.
func (r *CacheKeyStruct) StudentSessionKey(profileID uuid.UUID) string {
	return fmt.Sprintf("login:%s", profileID)
}

// RegistrationEventsChannel returns the Redis PubSub channel on which
// successful registration submissions are announced to agents.
func (r *CacheKeyStruct) RegistrationEventsChannel() string {
	return "registrations:events"
}

var CacheKey = NewCacheKeyStruct()
