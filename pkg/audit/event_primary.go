package audit

import "fmt"

// PrimaryChangeEvent records a user moving the primary flag to another
// identity.
type PrimaryChangeEvent struct {
	UserID       uint
	Login        string
	IdentityID   uint
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e PrimaryChangeEvent) MessageID() string {
	return "set-primary"
}

func (e PrimaryChangeEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s set identity %d as primary", e.Login, e.IdentityID)
	}
	msg := fmt.Sprintf("%s failed to set identity %d as primary", e.Login, e.IdentityID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e PrimaryChangeEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e PrimaryChangeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PrimaryChangeEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Login,
		},
		SDIDSubject: {
			"identity": fmt.Sprintf("%d", e.IdentityID),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "set-primary",
			"result":    result,
		},
	}
}
