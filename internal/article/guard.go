package article

// authorizeOwner permits a mutation only when the caller is exactly the
// recorded owner. No role hierarchy, no group ownership. The owner must come
// from the freshly loaded row, never from a client-supplied payload, or a
// crafted request could forge ownership.
func authorizeOwner(callerID, ownerID int64) error {
	if callerID != ownerID {
		return ErrNotOwner
	}
	return nil
}
