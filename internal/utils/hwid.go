package utils

import (
	"github.com/denisbrodbeck/machineid"
)

// HWID is a stable, app-scoped machine identifier. The raw machine id is
// hashed with the app name so it cannot be correlated across applications.
var HWID = resolveHWID()

func resolveHWID() string {
	id, err := machineid.ProtectedID("mdlm")
	if err != nil {
		return "unknown"
	}
	return id
}
