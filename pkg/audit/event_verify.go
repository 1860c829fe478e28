package audit

import "fmt"

// VerificationEvent records an admin verifying an identity record.
type VerificationEvent struct {
	AdminID      uint
	Login        string
	IdentityID   uint
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e VerificationEvent) MessageID() string {
	return "verify"
}

func (e VerificationEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s verified identity %d", e.Login, e.IdentityID)
	}
	msg := fmt.Sprintf("%s failed to verify identity %d", e.Login, e.IdentityID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e VerificationEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e VerificationEvent) Facility() int {
	return FacilityAuthPriv
}

func (e VerificationEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user":  e.Login,
			"admin": fmt.Sprintf("%d", e.AdminID),
		},
		SDIDSubject: {
			"identity": fmt.Sprintf("%d", e.IdentityID),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "verify",
			"result":    result,
		},
	}
}
