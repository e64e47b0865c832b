package email

import (
	"bytes"
	"html/template"
	"strings"
	texttemplate "text/template"
)

// ContactForm is a message submitted through the public contact form
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Brand identifies the workshop in outgoing mail
type Brand struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

type contactData struct {
	Form  ContactForm
	Brand Brand
	Lines []string
}

var (
	operatorHTML = template.Must(template.New("operator_html").Parse(operatorHTMLTemplate))
	operatorText = texttemplate.Must(texttemplate.New("operator_text").Parse(operatorTextTemplate))
	replyHTML    = template.Must(template.New("reply_html").Parse(replyHTMLTemplate))
	replyText    = texttemplate.Must(texttemplate.New("reply_text").Parse(replyTextTemplate))
)

// OperatorNotification builds the message telling the workshop about a new enquiry.
// Replies go straight to the sender of the form.
func OperatorNotification(to string, brand Brand, form ContactForm) (Message, error) {
	data := newContactData(brand, form)
	subject := "New enquiry from " + form.Name
	if form.Subject != "" {
		subject += ": " + form.Subject
	}
	return render(Message{To: to, ReplyTo: form.Email, Subject: subject}, data, operatorHTML, operatorText)
}

// AutoReply builds the acknowledgement sent back to the person who filled in the form
func AutoReply(brand Brand, form ContactForm) (Message, error) {
	data := newContactData(brand, form)
	subject := "We received your message - " + brand.Name
	return render(Message{To: form.Email, ReplyTo: brand.Email, Subject: subject}, data, replyHTML, replyText)
}

func newContactData(brand Brand, form ContactForm) contactData {
	return contactData{
		Form:  form,
		Brand: brand,
		Lines: strings.Split(strings.ReplaceAll(form.Message, "\r\n", "\n"), "\n"),
	}
}

func render(msg Message, data contactData, html *template.Template, text *texttemplate.Template) (Message, error) {
	var buf bytes.Buffer
	if err := html.Execute(&buf, data); err != nil {
		return Message{}, err
	}
	msg.HTML = buf.String()

	buf.Reset()
	if err := text.Execute(&buf, data); err != nil {
		return Message{}, err
	}
	msg.Text = buf.String()
	return msg, nil
}

const operatorHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>New enquiry</title></head>
<body style="margin: 0; padding: 24px; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; border-collapse: collapse;">
        <tr>
            <td style="background-color: #1f3b57; padding: 24px 30px;">
                <h1 style="color: #ffffff; margin: 0; font-size: 22px;">New website enquiry</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 30px;">
                <p style="color: #4a5568; margin: 0 0 8px 0;"><strong>Name:</strong> {{.Form.Name}}</p>
                <p style="color: #4a5568; margin: 0 0 8px 0;"><strong>Email:</strong> <a href="mailto:{{.Form.Email}}">{{.Form.Email}}</a></p>
                {{if .Form.Phone}}<p style="color: #4a5568; margin: 0 0 8px 0;"><strong>Phone:</strong> {{.Form.Phone}}</p>{{end}}
                {{if .Form.Subject}}<p style="color: #4a5568; margin: 0 0 8px 0;"><strong>Subject:</strong> {{.Form.Subject}}</p>{{end}}
                <div style="color: #1a1a2e; margin: 20px 0 0 0; padding: 16px; background-color: #f8fafc; border-left: 4px solid #1f3b57;">
                    {{range .Lines}}{{.}}<br>{{end}}
                </div>
            </td>
        </tr>
    </table>
</body>
</html>
`

const operatorTextTemplate = `New website enquiry

Name: {{.Form.Name}}
Email: {{.Form.Email}}
{{if .Form.Phone}}Phone: {{.Form.Phone}}
{{end}}{{if .Form.Subject}}Subject: {{.Form.Subject}}
{{end}}
{{.Form.Message}}
`

const replyHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Thank you</title></head>
<body style="margin: 0; padding: 24px; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; border-collapse: collapse;">
        <tr>
            <td style="background-color: #1f3b57; padding: 24px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 24px;">{{.Brand.Name}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 30px;">
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">Hello {{.Form.Name}},</p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Thank you for contacting us. We have received your message and will get back to you shortly.
                </p>
                <div style="color: #718096; font-size: 14px; margin: 20px 0; padding: 16px; background-color: #f8fafc;">
                    {{range .Lines}}{{.}}<br>{{end}}
                </div>
                {{if .Brand.Phone}}<p style="color: #4a5568; font-size: 14px;">For urgent requests call us on {{.Brand.Phone}}.</p>{{end}}
            </td>
        </tr>
        <tr>
            <td style="background-color: #f8fafc; padding: 20px; text-align: center; border-top: 1px solid #e2e8f0;">
                <p style="color: #a0aec0; font-size: 12px; margin: 0;">{{.Brand.Name}}{{if .Brand.Address}} &middot; {{.Brand.Address}}{{end}}</p>
            </td>
        </tr>
    </table>
</body>
</html>
`

const replyTextTemplate = `Hello {{.Form.Name}},

Thank you for contacting {{.Brand.Name}}. We have received your message and will get back to you shortly.

Your message:
{{.Form.Message}}
{{if .Brand.Phone}}
For urgent requests call us on {{.Brand.Phone}}.
{{end}}
{{.Brand.Name}}
`
