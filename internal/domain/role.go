package domain

// Capability is a named role grant. The workflow only reads grants;
// revoking a capability never retroactively invalidates past assignments.
type Capability string

const (
	CapabilityAdmin  Capability = "admin"
	CapabilityPastor Capability = "pastor"
)

// KnownCapability reports whether cap is one the role directory manages.
func KnownCapability(cap Capability) bool {
	return cap == CapabilityAdmin || cap == CapabilityPastor
}

// Caller identifies the authenticated user behind a request, together with
// the capabilities held at the time the request was authorized. It is passed
// explicitly into every service operation; there is no ambient session state.
type Caller struct {
	ID           int32
	Capabilities []Capability
}

func (c Caller) Has(cap Capability) bool {
	for _, held := range c.Capabilities {
		if held == cap {
			return true
		}
	}
	return false
}

func (c Caller) IsAdmin() bool {
	return c.Has(CapabilityAdmin)
}

func (c Caller) IsPastor() bool {
	return c.Has(CapabilityPastor)
}

// SystemCaller is used by scheduled jobs that run the same operations as
// admin endpoints without a human behind them.
func SystemCaller() Caller {
	return Caller{ID: 0, Capabilities: []Capability{CapabilityAdmin}}
}
