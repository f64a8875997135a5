package state

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeWorkspaceID computes a stable workspace ID from the repository
// fingerprint. This ID is used to name workspace state files.
func ComputeWorkspaceID(repoFingerprint string) string {
	hash := sha256.Sum256([]byte(repoFingerprint))
	return hex.EncodeToString(hash[:])
}
