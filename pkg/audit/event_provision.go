package audit

import "fmt"

// ProvisionEvent records the auto-creation of a user's first identity during
// resolution.
type ProvisionEvent struct {
	UserID   uint
	Login    string
	Locale   string
	ClientIP string
}

func (e ProvisionEvent) MessageID() string {
	return "provision"
}

func (e ProvisionEvent) Message() string {
	return fmt.Sprintf("auto-provisioned display identity for user %d (locale %s)", e.UserID, e.Locale)
}

func (e ProvisionEvent) Severity() Severity {
	return SeverityNotice
}

func (e ProvisionEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ProvisionEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Login,
		},
		SDIDSubject: {
			"owner":  fmt.Sprintf("%d", e.UserID),
			"locale": e.Locale,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "provision",
		},
	}
}
