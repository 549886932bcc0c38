package donations

import (
	"fmt"
	"log"

	"church-app/internal/domain/users"
)

// gatewayTransitions is the graph the payment callback is allowed to walk.
// Anything outside it must go through AdminOverride.
var gatewayTransitions = map[Status][]Status{
	StatusPending: {StatusCompleted, StatusFailed},
}

func CanGatewayTransition(from, to Status) bool {
	for _, s := range gatewayTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// GatewayComplete records a successful payment execution.
func (d *Donation) GatewayComplete(payerID string) error {
	if !CanGatewayTransition(d.Status, StatusCompleted) {
		return fmt.Errorf("donation %d: cannot complete from %s", d.ID, d.Status)
	}
	d.Status = StatusCompleted
	d.PayPalPayerID = &payerID
	return nil
}

// GatewayFail records a failed payment execution.
func (d *Donation) GatewayFail() error {
	if !CanGatewayTransition(d.Status, StatusFailed) {
		return fmt.Errorf("donation %d: cannot fail from %s", d.ID, d.Status)
	}
	d.Status = StatusFailed
	return nil
}

// AdminOverride sets the status unconditionally, with no adjacency check
// against the gateway graph. Every use is audit-logged because it bypasses
// the normal lifecycle (including reopening CANCELLED back to PENDING).
func AdminOverride(d *Donation, to Status, actor *users.User) error {
	if !ValidStatus(to) {
		return fmt.Errorf("invalid status %q", to)
	}
	from := d.Status
	d.Status = to
	log.Printf("AUDIT donation=%d status %s -> %s by admin user=%d (%s)",
		d.ID, from, to, actor.ID, actor.Email)
	return nil
}
