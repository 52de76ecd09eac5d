// Package repository implements the MySQL-backed stores consumed by the
// auth core. Repositories translate driver-level failures into the auth
// package's error kinds so higher layers never inspect SQL errors.
package repository

import "strings"

// isDuplicateKey reports whether a MySQL error is a unique-constraint
// violation (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
