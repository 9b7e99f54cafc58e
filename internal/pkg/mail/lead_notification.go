package mail

import (
	"fmt"
	"html"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/internal/pkg/env"
)

// SendLeadNotification emails a vendor about a fresh lead request. Callers
// treat it as best-effort; the lead row is already committed when this runs.
func SendLeadNotification(vendor *models.Vendor, lead *models.LeadRequest) error {
	if env.GetEnv("SMTP_HOST", "") == "" {
		// Mail is optional in local setups.
		return nil
	}

	subject := "New rental inquiry on EquipScout"

	body := fmt.Sprintf(`<h2>New rental inquiry</h2>
<p>Hi %s, someone is looking for equipment:</p>
<ul>
<li><strong>Name:</strong> %s</li>
<li><strong>Phone:</strong> %s</li>
<li><strong>Email:</strong> %s</li>
<li><strong>Jobsite:</strong> %s</li>
<li><strong>Needed:</strong> %s</li>
</ul>
<p>%s</p>`,
		html.EscapeString(vendor.Name),
		html.EscapeString(orDash(lead.RequesterName)),
		html.EscapeString(orDash(lead.RequesterPhone)),
		html.EscapeString(orDash(lead.RequesterEmail)),
		html.EscapeString(orDash(lead.JobsiteLocationText)),
		html.EscapeString(orDash(lead.NeedDate)),
		html.EscapeString(lead.Message),
	)

	return SendMail(vendor.Email, subject, body)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
