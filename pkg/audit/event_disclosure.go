package audit

import (
	"fmt"
	"strings"

	"github.com/personahq/persona/pkg/model"
)

// DisclosureEvent records a non-owner principal reading an identity through
// the disclosure filter. Fields holds the exact key set returned, which may
// be only the minimal identifiers when the visibility gate denied.
type DisclosureEvent struct {
	IdentityID uint
	OwnerID    uint
	AccessedBy uint
	Login      string
	Context    model.Context
	Fields     model.StringList
	ClientIP   string
	UserAgent  string
}

func (e DisclosureEvent) MessageID() string {
	return "disclose"
}

func (e DisclosureEvent) Message() string {
	return fmt.Sprintf("%s read identity %d (user %d, context %s): %s",
		e.Login, e.IdentityID, e.OwnerID, e.Context, strings.Join(e.Fields, ","))
}

func (e DisclosureEvent) Severity() Severity {
	return SeverityInfo
}

func (e DisclosureEvent) Facility() int {
	return FacilityAuthPriv
}

func (e DisclosureEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Login,
		},
		SDIDSubject: {
			"identity": fmt.Sprintf("%d", e.IdentityID),
			"owner":    fmt.Sprintf("%d", e.OwnerID),
			"context":  e.Context.String(),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "disclose",
			"fields":    strings.Join(e.Fields, ","),
		},
	}
}

// Record maps the event onto its append-only access_logs row.
func (e DisclosureEvent) Record() *model.AccessLog {
	return &model.AccessLog{
		IdentityID:     e.IdentityID,
		AccessedBy:     e.AccessedBy,
		AccessedFields: e.Fields,
		AccessContext:  e.Context.String(),
		IPAddress:      e.ClientIP,
		UserAgent:      e.UserAgent,
	}
}
