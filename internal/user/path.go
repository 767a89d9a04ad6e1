package user

import "fmt"

// ProfileImagePath derives the object-store key for a user's profile image.
// One fixed key per user: re-issued upload grants always target the same
// object, so a newer upload overwrites the previous one instead of piling up.
func ProfileImagePath(userID int64) string {
	return fmt.Sprintf("users/%d/profile-image.png", userID)
}
