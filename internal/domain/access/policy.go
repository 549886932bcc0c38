package access

import (
	"church-app/internal/domain/users"
)

// capabilities is the single write-side policy table. A (kind, action)
// pair missing from it is denied for everyone but admins.
var capabilities = map[Kind]map[Action]Rule{
	KindDonations: {
		ActionCreate:  {Anyone: true},
		ActionDeclare: {Authenticated: true},
		// update_status and archive stay admin-only: no rule needed.
	},
	KindAnnouncements: {
		ActionCreate: {Staff: true},
		ActionUpdate: {Staff: true},
		ActionDelete: {Staff: true},
	},
	KindMessages: {
		ActionCreate: {Authenticated: true},
		ActionUpdate: {Authenticated: true},
		ActionDelete: {Authenticated: true},
	},
	KindPrayers: {
		ActionCreate: {Anyone: true},
		ActionUpdate: {Roles: []string{users.RolePastor}},
		ActionDelete: {Roles: []string{users.RolePastor}},
	},
	KindLives: {
		ActionCreate:    {Staff: true, Roles: []string{users.RolePastor}},
		ActionUpdate:    {Staff: true, Roles: []string{users.RolePastor}},
		ActionDelete:    {Staff: true, Roles: []string{users.RolePastor}},
		ActionBroadcast: {Roles: []string{users.RolePastor}},
	},
}

// stats is not tied to row visibility, so it lives in the table too.
func init() {
	capabilities[KindDonations][ActionViewStats] = Rule{Roles: []string{users.RolePastor}}
}

// Can evaluates the write-side policy for an actor (nil means guest).
// Admins and superusers pass every check.
func Can(u *users.User, kind Kind, action Action) bool {
	rule, ok := capabilities[kind][action]
	if u == nil {
		return ok && rule.Anyone
	}
	if u.IsAdmin() {
		return true
	}
	if !ok {
		return false
	}
	if rule.Anyone || rule.Authenticated {
		return true
	}
	if rule.Staff && u.IsStaff {
		return true
	}
	for _, r := range rule.Roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
