package usecase

import "fmt"

// unreadCountTTL bounds staleness of the cached badge value; every mutation
// path also invalidates the key eagerly.
const unreadCountTTLSeconds = 30

func unreadCountKey(username string) string {
	return fmt.Sprintf("notif:unread:%s", username)
}
