package access

import (
	"time"

	"church-app/internal/domain/lives"
	"church-app/internal/domain/users"

	"gorm.io/gorm"
)

// DenyAll is the fail-closed scope: an unknown (role, kind) pair sees an
// empty result set, never an error.
func DenyAll(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

func allRows(db *gorm.DB) *gorm.DB {
	return db
}

// Scope returns the row-visibility filter for kind as seen by u (nil for
// guests). It is applied before every read, update and delete.
func Scope(kind Kind, u *users.User) func(*gorm.DB) *gorm.DB {
	if fn, ok := scopes[kind]; ok {
		return fn(u)
	}
	return DenyAll
}

var scopes = map[Kind]func(u *users.User) func(*gorm.DB) *gorm.DB{

	// Admins browse every non-archived donation, everyone else only
	// their own. Archived rows are invisible here but still counted by
	// the stats aggregation.
	KindDonations: func(u *users.User) func(*gorm.DB) *gorm.DB {
		if u == nil {
			return DenyAll
		}
		if u.IsAdmin() {
			return func(db *gorm.DB) *gorm.DB {
				return db.Where("is_archived = ?", false)
			}
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ? AND is_archived = ?", u.ID, false)
		}
	},

	// Staff manage everything; members read active, unexpired entries;
	// any other role reads nothing.
	KindAnnouncements: func(u *users.User) func(*gorm.DB) *gorm.DB {
		if u == nil {
			return DenyAll
		}
		if u.IsAdmin() || u.IsStaff {
			return allRows
		}
		if u.Role == users.RoleMember {
			return func(db *gorm.DB) *gorm.DB {
				return db.Where("is_active = ? AND (expires_at IS NULL OR expires_at > ?)",
					true, time.Now())
			}
		}
		return DenyAll
	},

	KindMessages: func(u *users.User) func(*gorm.DB) *gorm.DB {
		if u == nil {
			return DenyAll
		}
		if u.IsAdmin() {
			return allRows
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("sender_id = ? OR receiver_id = ?", u.ID, u.ID)
		}
	},

	// Pastors and admins see all requests, guest ones included.
	KindPrayers: func(u *users.User) func(*gorm.DB) *gorm.DB {
		if u == nil {
			return DenyAll
		}
		if u.IsAdmin() || u.Role == users.RolePastor {
			return allRows
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ?", u.ID)
		}
	},

	// Members only see what is coming up or on air.
	KindLives: func(u *users.User) func(*gorm.DB) *gorm.DB {
		if u == nil {
			return DenyAll
		}
		if u.Role == users.RoleMember {
			return func(db *gorm.DB) *gorm.DB {
				return db.Where("status IN ?", []lives.Status{lives.StatusLive, lives.StatusPlanned})
			}
		}
		return allRows
	},
}
