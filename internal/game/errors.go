package game

import "errors"

var (
	// ErrInsufficientAmmo is returned by Fire when the weapon has no rounds left.
	ErrInsufficientAmmo = errors.New("insufficient ammo")
	// ErrInvalidTarget marks a degenerate aim or homing vector of zero length.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrAlreadyTerminal is returned by mutating calls after Victory or Defeat.
	ErrAlreadyTerminal = errors.New("session already terminal")
	// ErrUnknownWeapon is returned for weapon values the player cannot fire.
	ErrUnknownWeapon = errors.New("unknown weapon")
)
