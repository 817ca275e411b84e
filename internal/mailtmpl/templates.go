// Package mailtmpl renders the four transactional email kinds. Renderers
// are pure: they take already-sanitized data and return subject, HTML and
// an equivalent plain-text rendition. Callers own sanitization; nothing
// here escapes or performs I/O.
package mailtmpl

import (
	"fmt"
	"strings"

	"github.com/hearthside/hearthside-api/internal/models"
)

const (
	businessName  = "Hearthside Remodeling"
	businessPhone = "(503) 555-0147"
)

// QuoteEmailData carries sanitized quote-request fields for rendering.
type QuoteEmailData struct {
	TrackingID string
	Name       string
	Email      string
	Phone      string
	Service    string
	City       string
	State      string
	Message    string
	ImageURLs  []string
}

// Location joins city and state for display.
func (d QuoteEmailData) Location() string {
	switch {
	case d.City != "" && d.State != "":
		return d.City + ", " + d.State
	case d.City != "":
		return d.City
	default:
		return d.State
	}
}

// ContactEmailData carries sanitized contact-message fields for rendering.
type ContactEmailData struct {
	TrackingID string
	FullName   string
	Email      string
	Phone      string
	Service    string
	HeardFrom  string
	Message    string
}

// QuoteCustomer renders the confirmation sent to a quote submitter.
func QuoteCustomer(d QuoteEmailData) models.EmailContent {
	subject := fmt.Sprintf("We received your quote request (%s)", d.TrackingID)

	var photos string
	if n := len(d.ImageURLs); n > 0 {
		photos = fmt.Sprintf(`<tr><td style="padding: 8px 0; color: #6B7280;">Photos</td><td style="padding: 8px 0;">%d attached</td></tr>`, n)
	}

	location := d.Location()
	var locationRow string
	if location != "" {
		locationRow = fmt.Sprintf(`<tr><td style="padding: 8px 0; color: #6B7280;">Location</td><td style="padding: 8px 0;">%s</td></tr>`, location)
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; background-color: #F5F1EA; font-family: Georgia, 'Times New Roman', serif; color: #2D2A26;">
  <table role="presentation" width="600" cellspacing="0" cellpadding="0" style="margin: 0 auto; background-color: #FFFFFF; border-radius: 8px; overflow: hidden;">
    <tr>
      <td style="background-color: #7C4A2D; padding: 24px 32px; color: #FFFFFF;">
        <h1 style="margin: 0; font-size: 22px;">%s</h1>
      </td>
    </tr>
    <tr>
      <td style="padding: 32px;">
        <p style="margin: 0 0 16px;">Hi %s,</p>
        <p style="margin: 0 0 16px;">Thanks for requesting a quote. Your reference number is <strong>%s</strong> &mdash; keep it handy if you call us about this project.</p>
        <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="border-top: 1px solid #E5E0D8; border-bottom: 1px solid #E5E0D8; margin: 16px 0;">
          <tr><td style="padding: 8px 0; color: #6B7280; width: 120px;">Service</td><td style="padding: 8px 0;">%s</td></tr>
          %s%s
        </table>
        <p style="margin: 0 0 8px;"><strong>What happens next</strong></p>
        <ol style="margin: 0 0 16px; padding-left: 20px;">
          <li style="margin-bottom: 6px;">A project coordinator reviews your request within one business day.</li>
          <li style="margin-bottom: 6px;">We call or email to confirm details and schedule a site visit.</li>
          <li style="margin-bottom: 6px;">You receive a written estimate, usually within a week of the visit.</li>
        </ol>
        <p style="margin: 0;">Questions in the meantime? Call us at %s.</p>
      </td>
    </tr>
    <tr>
      <td style="padding: 16px 32px; background-color: #F5F1EA; color: #6B7280; font-size: 12px;">%s</td>
    </tr>
  </table>
</body>
</html>`, businessName, d.Name, d.TrackingID, d.Service, locationRow, photos, businessPhone, businessName)

	var textLoc string
	if location != "" {
		textLoc = fmt.Sprintf("Location: %s\n", location)
	}
	var textPhotos string
	if n := len(d.ImageURLs); n > 0 {
		textPhotos = fmt.Sprintf("Photos: %d attached\n", n)
	}

	text := fmt.Sprintf(`Hi %s,

Thanks for requesting a quote. Your reference number is %s.

Service: %s
%s%s
What happens next:
1. A project coordinator reviews your request within one business day.
2. We call or email to confirm details and schedule a site visit.
3. You receive a written estimate, usually within a week of the visit.

Questions in the meantime? Call us at %s.

%s
`, d.Name, d.TrackingID, d.Service, textLoc, textPhotos, businessPhone, businessName)

	return models.EmailContent{Subject: subject, HTML: html, Text: text}
}

// QuoteBusiness renders the internal alert for a new quote request,
// including an inline gallery when photos were attached.
func QuoteBusiness(d QuoteEmailData) models.EmailContent {
	subject := fmt.Sprintf("New quote request: %s (%s)", d.Service, d.TrackingID)

	var gallery string
	if len(d.ImageURLs) > 0 {
		var imgs strings.Builder
		for _, u := range d.ImageURLs {
			fmt.Fprintf(&imgs, `<img src="%s" alt="project photo" style="max-width: 260px; margin: 0 8px 8px 0; border-radius: 4px;">`, u)
		}
		gallery = fmt.Sprintf(`<p style="margin: 16px 0 8px;"><strong>Photos (%d)</strong></p><div>%s</div>`, len(d.ImageURLs), imgs.String())
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: Arial, sans-serif; color: #2D2A26;">
  <h2 style="margin: 0 0 16px;">New quote request %s</h2>
  <table cellspacing="0" cellpadding="0" style="border-collapse: collapse;">
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Name</td><td style="padding: 6px 0;">%s</td></tr>
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Email</td><td style="padding: 6px 0;"><a href="mailto:%s">%s</a></td></tr>
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Phone</td><td style="padding: 6px 0;">%s</td></tr>
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Service</td><td style="padding: 6px 0;">%s</td></tr>
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Location</td><td style="padding: 6px 0;">%s</td></tr>
  </table>
  <p style="margin: 16px 0 8px;"><strong>Message</strong></p>
  <p style="margin: 0;">%s</p>
  %s
</body>
</html>`, d.TrackingID, d.Name, d.Email, d.Email, orDash(d.Phone), d.Service, orDash(d.Location()), orDash(d.Message), gallery)

	var textImages string
	if len(d.ImageURLs) > 0 {
		textImages = "\nPhotos:\n" + strings.Join(d.ImageURLs, "\n") + "\n"
	}

	text := fmt.Sprintf(`New quote request %s

Name: %s
Email: %s
Phone: %s
Service: %s
Location: %s

Message:
%s
%s`, d.TrackingID, d.Name, d.Email, orDash(d.Phone), d.Service, orDash(d.Location()), orDash(d.Message), textImages)

	return models.EmailContent{Subject: subject, HTML: html, Text: text}
}

// ContactCustomer renders the confirmation sent to a contact-form submitter.
func ContactCustomer(d ContactEmailData) models.EmailContent {
	subject := fmt.Sprintf("We got your message (%s)", d.TrackingID)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; background-color: #F5F1EA; font-family: Georgia, 'Times New Roman', serif; color: #2D2A26;">
  <table role="presentation" width="600" cellspacing="0" cellpadding="0" style="margin: 0 auto; background-color: #FFFFFF; border-radius: 8px; overflow: hidden;">
    <tr>
      <td style="background-color: #7C4A2D; padding: 24px 32px; color: #FFFFFF;">
        <h1 style="margin: 0; font-size: 22px;">%s</h1>
      </td>
    </tr>
    <tr>
      <td style="padding: 32px;">
        <p style="margin: 0 0 16px;">Hi %s,</p>
        <p style="margin: 0 0 16px;">Thanks for reaching out. We've logged your message under reference <strong>%s</strong> and will get back to you within one business day.</p>
        <p style="margin: 0 0 8px; color: #6B7280;">Your message:</p>
        <blockquote style="margin: 0 0 16px; padding: 12px 16px; background-color: #F5F1EA; border-left: 3px solid #7C4A2D;">%s</blockquote>
        <p style="margin: 0;">If it's urgent, call us at %s.</p>
      </td>
    </tr>
    <tr>
      <td style="padding: 16px 32px; background-color: #F5F1EA; color: #6B7280; font-size: 12px;">%s</td>
    </tr>
  </table>
</body>
</html>`, businessName, d.FullName, d.TrackingID, d.Message, businessPhone, businessName)

	text := fmt.Sprintf(`Hi %s,

Thanks for reaching out. We've logged your message under reference %s and will get back to you within one business day.

If it's urgent, call us at %s.

%s
`, d.FullName, d.TrackingID, businessPhone, businessName)

	return models.EmailContent{Subject: subject, HTML: html, Text: text}
}

// ContactBusiness renders the internal alert for a new contact message.
func ContactBusiness(d ContactEmailData) models.EmailContent {
	subject := fmt.Sprintf("New contact message (%s)", d.TrackingID)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: Arial, sans-serif; color: #2D2A26;">
  <h2 style="margin: 0 0 16px;">New contact message %s</h2>
  <table cellspacing="0" cellpadding="0" style="border-collapse: collapse;">
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Name</td><td style="padding: 6px 0;">%s</td></tr>
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Email</td><td style="padding: 6px 0;"><a href="mailto:%s">%s</a></td></tr>
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Phone</td><td style="padding: 6px 0;">%s</td></tr>
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Service interest</td><td style="padding: 6px 0;">%s</td></tr>
    <tr><td style="padding: 6px 16px 6px 0; color: #6B7280;">Heard about us</td><td style="padding: 6px 0;">%s</td></tr>
  </table>
  <p style="margin: 16px 0 8px;"><strong>Message</strong></p>
  <p style="margin: 0;">%s</p>
</body>
</html>`, d.TrackingID, d.FullName, d.Email, d.Email, d.Phone, orDash(d.Service), orDash(d.HeardFrom), d.Message)

	text := fmt.Sprintf(`New contact message %s

Name: %s
Email: %s
Phone: %s
Service interest: %s
Heard about us: %s

Message:
%s
`, d.TrackingID, d.FullName, d.Email, d.Phone, orDash(d.Service), orDash(d.HeardFrom), d.Message)

	return models.EmailContent{Subject: subject, HTML: html, Text: text}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
