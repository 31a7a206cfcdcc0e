// Package perm defines the server's permission tiers and the policy that
// decides which requests each tier may execute.
package perm

import (
	"github.com/meppu/eight/errs"
	"github.com/meppu/eight/proto"
)

// Permission is a small enum with its policy expressed as methods rather
// than an external switch.
type Permission uint8

const (
	Guest Permission = iota
	Admin
	Owner
)

// String renders the permission tier for logging and CLI display.
func (p Permission) String() string {
	switch p {
	case Guest:
		return "guest"
	case Admin:
		return "admin"
	case Owner:
		return "owner"
	default:
		return "unknown"
	}
}

// Parse converts a CLI/config integer into a Permission, rejecting values
// outside the closed set.
func Parse(n int) (Permission, bool) {
	switch Permission(n) {
	case Guest, Admin, Owner:
		return Permission(n), true
	default:
		return 0, false
	}
}

// Lower moves the tier down one step. Guest has no lower tier and returns
// itself unchanged.
func (p Permission) Lower() Permission {
	if p == Guest {
		return Guest
	}
	return p - 1
}

// Allowed reports whether a server held at tier p may execute req.
func (p Permission) Allowed(req proto.Request) bool {
	switch req.Kind() {
	case proto.KindGet, proto.KindExists, proto.KindDowngradePermission:
		// read-only, and anyone may ask to lower the server's own tier.
		return true
	case proto.KindSet, proto.KindDelete, proto.KindIncrement, proto.KindDecrement, proto.KindSearch:
		return p == Admin || p == Owner
	case proto.KindFlush:
		return p == Owner
	default:
		return false
	}
}

// Check is Allowed expressed as an error-returning guard, for use directly
// in the dispatcher's execution path.
func (p Permission) Check(req proto.Request) error {
	if !p.Allowed(req) {
		return errs.New(errs.PermissionFailure)
	}
	return nil
}
