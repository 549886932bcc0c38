package access

// Kind names a resource family covered by the policy table.
type Kind string

const (
	KindDonations     Kind = "donations"
	KindAnnouncements Kind = "announcements"
	KindMessages      Kind = "messages"
	KindPrayers       Kind = "prayers"
	KindLives         Kind = "lives"
)

// Action names a write-side capability. Read visibility is handled
// separately by Scope.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionDeclare      Action = "declare"
	ActionUpdateStatus Action = "update_status"
	ActionArchive      Action = "archive"
	ActionViewStats    Action = "view_stats"
	ActionBroadcast    Action = "broadcast"
)

// Rule grants an action. Admins and superusers are granted implicitly and
// never need to appear here.
type Rule struct {
	Anyone        bool     // guests included
	Authenticated bool     // any signed-in user
	Staff         bool     // any user with the staff flag
	Roles         []string // explicitly enumerated roles
}
