package audit

import "fmt"

// APIKeyRotationEvent records an API key rotation.
type APIKeyRotationEvent struct {
	Login        string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e APIKeyRotationEvent) MessageID() string {
	return "api-key"
}

func (e APIKeyRotationEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s rotated their API key", e.Login)
	}
	msg := fmt.Sprintf("%s failed to rotate their API key", e.Login)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e APIKeyRotationEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e APIKeyRotationEvent) Facility() int {
	return FacilityAuthPriv
}

func (e APIKeyRotationEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Login,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "rotate-api-key",
			"result":    result,
		},
	}
}
