package guide

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"text/template"
)

// Email template keys referenced by Step.EmailTemplate.
const (
	TemplateRenewalRequest    = "renewal-request"
	TemplateRedemptionRestore = "redemption-restore"
	TemplateOwnerInquiry      = "owner-inquiry"
	TemplatePurchaseOffer     = "purchase-offer"
	TemplateHostingSupport    = "hosting-support"
	TemplateAccountRecovery   = "account-recovery"
	TemplateHijackReport      = "hijack-report"
	TemplateDisputeNotice     = "dispute-notice"
)

var ErrUnknownTemplate = errors.New("unknown email template")

// Email is a rendered template.
type Email struct {
	Key     string `json:"key"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type emailTemplate struct {
	subject *template.Template
	body    *template.Template
}

type emailData struct {
	Domain    string
	Registrar string
}

var emailTemplates = map[string]emailTemplate{
	TemplateRenewalRequest: parseEmail(
		"Renewal request for {{.Domain}}",
		`Hello {{.Registrar}} support,

My domain {{.Domain}} recently expired and is still in the renewal grace period.
Please renew it for one year and confirm that DNS has been restored.

I can verify account ownership by phone or email on request.

Thank you`),
	TemplateRedemptionRestore: parseEmail(
		"Redemption restore request for {{.Domain}}",
		`Hello {{.Registrar}} support,

I am the registrant of {{.Domain}}, which is currently in the redemption period.
Please restore the domain to my account and let me know the total restore fee,
including the renewal, so I can pay it today.

Thank you`),
	TemplateOwnerInquiry: parseEmail(
		"Inquiry about {{.Domain}}",
		`Hello,

I am interested in acquiring the domain {{.Domain}}. Would you consider selling it?
If so, please let me know a price you would accept. I am happy to use an escrow
service so the transfer is safe for both of us.

Best regards`),
	TemplatePurchaseOffer: parseEmail(
		"Offer for {{.Domain}}",
		`Hello,

I saw that {{.Domain}} is listed for sale. I would like to make an offer and can
complete payment through escrow as soon as we agree on a price.

Best regards`),
	TemplateHostingSupport: parseEmail(
		"Website for {{.Domain}} is not responding",
		`Hello,

The website at {{.Domain}} stopped responding although DNS still resolves to your
servers. Could you check whether the account or server has an issue and tell me
what is needed to bring it back online?

Thank you`),
	TemplateAccountRecovery: parseEmail(
		"Account recovery for {{.Domain}}",
		`Hello {{.Registrar}} support,

I am the registrant of {{.Domain}} and have lost access to the account that holds it.
I can provide invoices, the original registration email and government ID.
Please tell me which documents you need to restore access.

Thank you`),
	TemplateHijackReport: parseEmail(
		"URGENT: unauthorized transfer of {{.Domain}}",
		`Hello {{.Registrar}} abuse team,

The domain {{.Domain}} was transferred or modified without my authorization.
Please lock the domain, preserve all logs related to the change and open an
unauthorized-transfer investigation. I can supply evidence of ownership immediately.

Thank you`),
	TemplateDisputeNotice: parseEmail(
		"Request to transfer {{.Domain}}",
		`Hello,

Under our agreement, the domain {{.Domain}} was registered on my behalf. I am
formally requesting that you transfer it to my registrar account within 14 days.
Please reply to confirm or to arrange the transfer.

Regards`),
}

func parseEmail(subject, body string) emailTemplate {
	return emailTemplate{
		subject: template.Must(template.New("subject").Parse(subject)),
		body:    template.Must(template.New("body").Parse(body)),
	}
}

// TemplateKeys lists every email template key in sorted order.
func TemplateKeys() []string {
	keys := make([]string, 0, len(emailTemplates))
	for k := range emailTemplates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderEmail fills the template for key. An empty registrar renders as "Registrar".
func RenderEmail(key, d, registrar string) (Email, error) {
	tpl, ok := emailTemplates[key]
	if !ok {
		return Email{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, key)
	}
	if registrar == "" {
		registrar = "Registrar"
	}
	data := emailData{Domain: d, Registrar: registrar}

	var subject, body bytes.Buffer
	if err := tpl.subject.Execute(&subject, data); err != nil {
		return Email{}, fmt.Errorf("render subject: %w", err)
	}
	if err := tpl.body.Execute(&body, data); err != nil {
		return Email{}, fmt.Errorf("render body: %w", err)
	}
	return Email{Key: key, Subject: subject.String(), Body: body.String()}, nil
}
